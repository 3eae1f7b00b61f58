package service

import "errors"

// Error taxonomy of the client services. Every error returned by a service
// matches exactly one of these via [errors.Is]; the adapter error it came
// from stays reachable through the wrap chain.
var (
	// ErrValidation marks input rejected before any network call. The
	// concrete value is a [*ValidationError].
	ErrValidation = errors.New("validation failed")

	// ErrAuthExpired is returned after a 401/403: the session has been
	// cleared and navigation to the entry page was requested.
	ErrAuthExpired = errors.New("session expired")

	// ErrRateLimited is returned on a 429 once no retry is left.
	ErrRateLimited = errors.New("rate limited")

	// ErrBackendRejected marks any other backend refusal. The concrete value
	// is a [*RejectedError] carrying the text to show.
	ErrBackendRejected = errors.New("backend rejected request")

	// ErrNetworkFailure is returned when no response was received.
	ErrNetworkFailure = errors.New("network failure")

	// ErrRefreshSuppressed is returned by RefreshList when the call was
	// dropped because a fetch is in flight or the last one was too recent.
	ErrRefreshSuppressed = errors.New("refresh suppressed")

	// ErrGeneratorBusy is returned when a password generation is requested
	// while one is running or during the cooldown.
	ErrGeneratorBusy = errors.New("password generator busy")

	// ErrCreatedNotRefreshed wraps the refresh failure of a CreateSecret
	// whose create call was accepted. The record exists on the backend and
	// must not be submitted again.
	ErrCreatedNotRefreshed = errors.New("secret created, list not refreshed")
)

// ValidationError describes why input was rejected.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// Is makes a ValidationError match [ErrValidation].
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// RejectedError is a backend refusal with the message to show verbatim.
type RejectedError struct {
	Message string
	Err     error
}

func (e *RejectedError) Error() string {
	if e.Err == nil {
		return "backend rejected request: " + e.Message
	}
	return "backend rejected request: " + e.Message + ": " + e.Err.Error()
}

// Is makes a RejectedError match [ErrBackendRejected].
func (e *RejectedError) Is(target error) bool {
	return target == ErrBackendRejected
}

func (e *RejectedError) Unwrap() error {
	return e.Err
}

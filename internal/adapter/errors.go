package adapter

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Status sentinels. An [*HTTPError] matches the sentinel of its status code
// via [errors.Is].
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
)

var (
	// ErrNetworkFailure wraps transport errors: no response was received.
	ErrNetworkFailure = errors.New("network failure")

	// ErrUnexpectedResponse is returned when a 2xx body cannot be decoded
	// into the expected shape.
	ErrUnexpectedResponse = errors.New("unexpected response")

	// ErrMissingToken is returned by Login and Register when the reply has
	// no token.
	ErrMissingToken = errors.New("no token received")
)

var statusSentinels = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusTooManyRequests:     ErrTooManyRequests,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusBadGateway:          ErrBadGateway,
}

// HTTPError is the normalized form of a non-2xx reply.
type HTTPError struct {
	StatusCode int
	// Message is the backend's message field, or the status text when the
	// body had none.
	Message string
	// RetryAfter is the parsed Retry-After header; zero when absent.
	RetryAfter time.Duration
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
}

// Is matches the status sentinel of e.StatusCode.
func (e *HTTPError) Is(target error) bool {
	sentinel, ok := statusSentinels[e.StatusCode]
	return ok && sentinel == target
}

// EnvelopeError is returned when a 2xx reply carries a failure code in its
// {code, message} envelope.
type EnvelopeError struct {
	Code    int
	Message string
}

func (e *EnvelopeError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected envelope code %d", e.Code)
	}
	return fmt.Sprintf("unexpected envelope code %d: %s", e.Code, e.Message)
}

// Is makes an EnvelopeError match [ErrUnexpectedResponse].
func (e *EnvelopeError) Is(target error) bool {
	return target == ErrUnexpectedResponse
}

package service

import (
	"context"

	"github.com/MKhiriev/go-secret-keeper/models"
)

// Navigator moves the UI to the unauthenticated entry page. It is invoked by
// the SessionGuard after the stored credential was destroyed.
type Navigator interface {
	NavigateToEntry()
}

// NavigatorFunc adapts a plain function to [Navigator].
type NavigatorFunc func()

// NavigateToEntry implements Navigator.
func (f NavigatorFunc) NavigateToEntry() {
	if f != nil {
		f()
	}
}

// RouteDecision is the outcome of a route guard check.
type RouteDecision int

const (
	// RouteAllow renders the requested page.
	RouteAllow RouteDecision = iota
	// RouteRedirectToEntry sends the user to the login page.
	RouteRedirectToEntry
)

func (d RouteDecision) String() string {
	switch d {
	case RouteAllow:
		return "allow"
	case RouteRedirectToEntry:
		return "redirect-to-entry"
	default:
		return "unknown"
	}
}

// SessionGuard decides whether the client is authenticated and owns the
// single process-wide credential.
type SessionGuard interface {
	// IsValid reports whether a credential is stored and has the shape of a
	// JWT. When expiry enforcement is enabled an expired or undecodable
	// credential is also invalid.
	IsValid(ctx context.Context) bool

	// Invalidate destroys the stored credential. It is idempotent.
	Invalidate(ctx context.Context)

	// GuardRoute decides whether a page may be rendered. Public pages are
	// always allowed.
	GuardRoute(ctx context.Context, protected bool) RouteDecision

	// Check is the startup check: a credential that is present but invalid
	// is destroyed.
	Check(ctx context.Context)

	// Start stores a freshly issued credential.
	Start(ctx context.Context, token string) error

	// Expire handles a 401/403 from the backend: the credential is destroyed
	// and navigation to the entry page is requested. Concurrent calls
	// navigate at most once per stored credential.
	Expire(ctx context.Context)
}

// ClientAuthService logs the user in and out. Neither Login nor Register is
// treated as a session expiry on 401: wrong credentials are just rejected.
type ClientAuthService interface {
	// Login exchanges the credentials for a session credential and stores it.
	Login(ctx context.Context, credentials models.Credentials) error

	// Register creates an account and stores the returned credential. The
	// password confirmation is compared locally before anything is sent.
	Register(ctx context.Context, registration models.Registration) error

	// Logout destroys the stored credential without contacting the backend.
	Logout(ctx context.Context)
}

// SecretsSynchronizer keeps the client-side view of the user's secrets and
// performs create, update and delete against the backend.
//
// All list fetches pass through a fetch governor: at most one fetch is in
// flight, and attempts closer than the configured minimum interval are
// dropped with [ErrRefreshSuppressed]. A 429 is retried with exponential
// backoff up to the configured bound; a 401/403 expires the session.
type SecretsSynchronizer interface {
	// RefreshList fetches the list and replaces the cached view on success.
	RefreshList(ctx context.Context) error

	// CreateSecret creates a secret and then refreshes the list once the
	// backend had time to settle.
	CreateSecret(ctx context.Context, fields models.SecretFields) error

	// UpdateSecret replaces the record with the given id by the server's
	// reply. Other records are untouched.
	UpdateSecret(ctx context.Context, id models.SecretID, fields models.SecretFields) (models.Secret, error)

	// DeleteSecret removes exactly the record with the given id. A missing id
	// is not an error.
	DeleteSecret(ctx context.Context, id models.SecretID) error

	// Secrets returns a copy of the cached view in backend order.
	Secrets() []models.Secret

	// Close discards the results of every call still running. It is called
	// when the dashboard is left.
	Close()
}

// PasswordGenerator requests random passwords from the backend.
type PasswordGenerator interface {
	// Generate returns a password of the given length. The length is clamped
	// to the supported range. Calls during a running request or the cooldown
	// fail with [ErrGeneratorBusy].
	Generate(ctx context.Context, length int, includeSpecial bool) (string, error)
}

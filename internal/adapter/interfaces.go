// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the client and the
// secrets backend.
//
// [RequestClient] is the low-level REST client: it attaches the bearer
// credential, tags every call with an X-Request-ID and turns non-2xx replies
// into [*HTTPError] values. [ServerAdapter] adds typed calls for each backend
// endpoint on top of it.
//
// The adapter never invalidates the session and never navigates; it only
// reports. Status codes are reachable through [errors.Is] with the sentinels
// in errors.go (e.g. [ErrTooManyRequests] for 429, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-secret-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// RequestClient sends one request to the backend.
//
// path is relative to the configured base URL; body, when non-nil, is sent
// as JSON. A non-2xx reply returns both the [Response] and an error wrapping
// [*HTTPError]. A transport failure returns a nil Response and an error
// wrapping [ErrNetworkFailure].
type RequestClient interface {
	Send(ctx context.Context, method, path string, body any) (*Response, error)
}

// ServerAdapter defines typed communication with the secrets backend.
type ServerAdapter interface {
	RequestClient

	// Login exchanges credentials for a session token (data.token).
	Login(ctx context.Context, credentials models.Credentials) (string, error)

	// Register creates an account and returns its session token (top-level
	// token field).
	Register(ctx context.Context, registration models.Registration) (string, error)

	// GeneratePassword asks the backend for a random password. An empty
	// password in a 2xx reply is returned as-is.
	GeneratePassword(ctx context.Context, req models.GeneratePasswordRequest) (string, error)

	// ListSecrets fetches every secret owned by the authenticated user.
	ListSecrets(ctx context.Context) ([]models.Secret, error)

	// CreateSecret stores a new secret. The reply envelope must carry code
	// 201; anything else is returned as [*EnvelopeError].
	CreateSecret(ctx context.Context, fields models.SecretFields) error

	// UpdateSecret replaces the mutable fields of secret id and returns the
	// canonical record.
	UpdateSecret(ctx context.Context, id models.SecretID, fields models.SecretFields) (models.Secret, error)

	// DeleteSecret removes secret id.
	DeleteSecret(ctx context.Context, id models.SecretID) error
}

package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-secret-keeper/internal/adapter"
	"github.com/MKhiriev/go-secret-keeper/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func httpErr(status int, message string) error {
	return fmt.Errorf("GET /secret/api/list: %w", &adapter.HTTPError{StatusCode: status, Message: message})
}

// ── mapAdapterError ──────────────────────────────────────────────────────────

func TestMapAdapterError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    error
		message string
	}{
		{name: "unauthorized", err: httpErr(http.StatusUnauthorized, "Unauthorized"), want: ErrAuthExpired, message: app.MsgSessionExpired},
		{name: "forbidden", err: httpErr(http.StatusForbidden, "Forbidden"), want: ErrAuthExpired, message: app.MsgSessionExpired},
		{name: "too many requests", err: httpErr(http.StatusTooManyRequests, "slow down"), want: ErrRateLimited, message: app.MsgRateLimited},
		{name: "bad request verbatim", err: httpErr(http.StatusBadRequest, "Title too long"), want: ErrBackendRejected, message: "Title too long"},
		{name: "server error verbatim", err: httpErr(http.StatusInternalServerError, "database down"), want: ErrBackendRejected, message: "database down"},
		{name: "network", err: fmt.Errorf("%w: dial tcp", adapter.ErrNetworkFailure), want: ErrNetworkFailure, message: app.MsgNetworkFailure},
		{name: "envelope with message", err: &adapter.EnvelopeError{Code: 400, Message: "Duplicate title"}, want: ErrBackendRejected, message: "Duplicate title"},
		{name: "envelope without message", err: &adapter.EnvelopeError{Code: 200}, want: ErrBackendRejected, message: "fallback"},
		{name: "undecodable body", err: fmt.Errorf("decode: %w", adapter.ErrUnexpectedResponse), want: ErrBackendRejected, message: "fallback"},
		{name: "context cancelled", err: context.Canceled, want: context.Canceled, message: app.MsgUnexpectedError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapAdapterError(tt.err, "fallback")

			require.ErrorIs(t, got, tt.want)
			assert.Equal(t, tt.message, UserMessage(got))
		})
	}
}

func TestMapAdapterError_KeepsCause(t *testing.T) {
	cause := httpErr(http.StatusUnauthorized, "Unauthorized")

	got := mapAdapterError(cause, "")

	assert.ErrorIs(t, got, adapter.ErrUnauthorized)
	var he *adapter.HTTPError
	assert.True(t, errors.As(got, &he))
}

func TestMapAdapterError_Nil(t *testing.T) {
	assert.NoError(t, mapAdapterError(nil, "x"))
	assert.NoError(t, mapUnauthenticatedError(nil, "x"))
}

func TestMapUnauthenticatedError_UnauthorizedIsRejection(t *testing.T) {
	got := mapUnauthenticatedError(httpErr(http.StatusUnauthorized, "Invalid credentials"), app.MsgLoginFailed)

	assert.ErrorIs(t, got, ErrBackendRejected)
	assert.NotErrorIs(t, got, ErrAuthExpired)
	assert.Equal(t, "Invalid credentials", UserMessage(got))
}

// ── UserMessage ──────────────────────────────────────────────────────────────

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "validation", err: &ValidationError{Reason: app.MsgPasswordsDoNotMatch}, want: app.MsgPasswordsDoNotMatch},
		{name: "suppressed", err: ErrRefreshSuppressed, want: app.MsgRefreshSuppressed},
		{name: "busy", err: ErrGeneratorBusy, want: app.MsgGeneratorBusy},
		{name: "rejection wins over wrapped cause", err: &RejectedError{Message: app.MsgGeneratorRateLimited, Err: ErrRateLimited}, want: app.MsgGeneratorRateLimited},
		{name: "empty rejection", err: &RejectedError{}, want: app.MsgUnexpectedError},
		{name: "unknown", err: errors.New("boom"), want: app.MsgUnexpectedError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestRejectedError(t *testing.T) {
	err := &RejectedError{Message: "nope", Err: ErrRateLimited}

	assert.ErrorIs(t, err, ErrBackendRejected)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Contains(t, err.Error(), "nope")
	assert.Equal(t, "backend rejected request: nope", (&RejectedError{Message: "nope"}).Error())
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Reason: "Title is required"}

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "validation failed: Title is required", err.Error())
}

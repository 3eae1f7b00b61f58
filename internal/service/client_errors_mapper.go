// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-secret-keeper/internal/adapter"
	"github.com/MKhiriev/go-secret-keeper/internal/app"
)

// mapAdapterError translates an adapter error of an authenticated call into
// the service taxonomy. fallback is the text shown for a refusal that
// carries no backend message.
func mapAdapterError(err error, fallback string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrUnauthorized), errors.Is(err, adapter.ErrForbidden):
		return fmt.Errorf("%w: %w", ErrAuthExpired, err)
	default:
		return mapUnauthenticatedError(err, fallback)
	}
}

// mapUnauthenticatedError is mapAdapterError for login and register, where a
// 401 means wrong credentials rather than an expired session.
func mapUnauthenticatedError(err error, fallback string) error {
	if err == nil {
		return nil
	}

	var (
		httpErr     *adapter.HTTPError
		envelopeErr *adapter.EnvelopeError
	)

	switch {
	case errors.Is(err, adapter.ErrTooManyRequests):
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	case errors.Is(err, adapter.ErrNetworkFailure):
		return fmt.Errorf("%w: %w", ErrNetworkFailure, err)
	case errors.As(err, &httpErr):
		return &RejectedError{Message: orDefault(httpErr.Message, fallback), Err: err}
	case errors.As(err, &envelopeErr):
		return &RejectedError{Message: orDefault(envelopeErr.Message, fallback), Err: err}
	case errors.Is(err, adapter.ErrUnexpectedResponse):
		return &RejectedError{Message: fallback, Err: err}
	}

	return err
}

// isAuthFailure reports whether err came from a 401/403.
func isAuthFailure(err error) bool {
	return errors.Is(err, adapter.ErrUnauthorized) || errors.Is(err, adapter.ErrForbidden)
}

// UserMessage returns the banner text for err. A [*RejectedError] anywhere
// in the chain wins and is shown verbatim; everything else gets a fixed
// text. A nil error yields "".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var (
		validationErr *ValidationError
		rejectedErr   *RejectedError
	)

	switch {
	case errors.As(err, &validationErr):
		return validationErr.Reason
	case errors.As(err, &rejectedErr):
		return orDefault(rejectedErr.Message, app.MsgUnexpectedError)
	case errors.Is(err, ErrAuthExpired):
		return app.MsgSessionExpired
	case errors.Is(err, ErrRateLimited):
		return app.MsgRateLimited
	case errors.Is(err, ErrRefreshSuppressed):
		return app.MsgRefreshSuppressed
	case errors.Is(err, ErrGeneratorBusy):
		return app.MsgGeneratorBusy
	case errors.Is(err, ErrNetworkFailure):
		return app.MsgNetworkFailure
	}

	return app.MsgUnexpectedError
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

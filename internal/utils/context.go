// Package utils provides general-purpose helpers shared by the client
// packages: typed context keys, the resty client wrapper, request id
// generation and JWT helpers.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// RequestIDCtxKey carries the X-Request-ID of an outbound call. When it
	// is absent the adapter generates a fresh id.
	RequestIDCtxKey = contextKey("requestID")

	// SubjectCtxKey carries the authenticated subject (the user email) on
	// the fake backend.
	SubjectCtxKey = contextKey("subject")
)

// WithRequestID returns a copy of ctx carrying requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDCtxKey, requestID)
}

// GetRequestIDFromContext returns the request id stored in ctx and whether a
// non-empty one was found.
func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(RequestIDCtxKey).(string)
	return requestID, ok && requestID != ""
}

// GetSubjectFromContext returns the authenticated subject stored in ctx.
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectCtxKey).(string)
	return subject, ok
}

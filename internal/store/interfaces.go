package store

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SessionStore keeps the single process-wide session credential.
//
// Get returns [ErrSessionNotFound] when no credential is stored. Set replaces
// any previous credential. Clear is idempotent.
type SessionStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

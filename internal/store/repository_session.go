package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-secret-keeper/internal/logger"
)

// sessionRepository is the SQLite-backed implementation of [SessionStore].
// The credential survives client restarts until it is cleared.
type sessionRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewSessionRepository constructs a [SessionStore] on top of a migrated
// session database.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionStore {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (r *sessionRepository) Get(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetSessionQuery()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var token string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&token)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", ErrSessionNotFound
	case err != nil:
		log.Err(err).Str("func", "*sessionRepository.Get").Msg("failed to read session row")
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return token, nil
}

func (r *sessionRepository) Set(ctx context.Context, token string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSetSessionQuery(token, r.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.execWithRetry(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sessionRepository.Set").Msg("failed to upsert session row")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	log := logger.FromContext(ctx)

	query, args, err := buildClearSessionQuery()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.execWithRetry(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sessionRepository.Clear").Msg("failed to delete session row")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

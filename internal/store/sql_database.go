package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/MKhiriev/go-secret-keeper/internal/logger"
	"github.com/MKhiriev/go-secret-keeper/migrations"
	"github.com/sethvargo/go-retry"
)

// Write attempts on a busy database.
const (
	writeRetries   = 3
	writeRetryWait = 25 * time.Millisecond
)

// DB wraps the SQLite connection of the session store.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies all pending session store migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// execWithRetry runs a statement and repeats it while the classifier reports
// the failure as transient.
func (db *DB) execWithRetry(ctx context.Context, query string, args ...any) error {
	backoff := retry.WithMaxRetries(writeRetries, retry.NewExponential(writeRetryWait))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		_, err := db.ExecContext(ctx, query, args...)
		if err != nil && db.classify(err) == Retryable {
			db.logger.Debug().Err(err).Msg("database busy, retrying statement")
			return retry.RetryableError(err)
		}
		return err
	})
}

func (db *DB) classify(err error) ErrorClassification {
	if db.errorClassificator == nil {
		return NonRetryable
	}
	return db.errorClassificator.Classify(err)
}

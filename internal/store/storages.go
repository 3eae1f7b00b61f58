package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-secret-keeper/internal/config"
	"github.com/MKhiriev/go-secret-keeper/internal/logger"
)

// memoryDSN selects the in-memory session store explicitly.
const memoryDSN = ":memory:"

// ClientStorages groups the client-side storage into a single value that can
// be passed around the service layer.
type ClientStorages struct {
	// Sessions holds the session credential.
	Sessions SessionStore

	db *DB
}

// NewClientStorages initialises the client storage layer:
//  1. An empty DSN or ":memory:" selects the in-memory session store.
//  2. Otherwise the SQLite file at cfg.DB.DSN is opened (and created when
//     missing), migrations are applied and the SQL session repository is
//     used.
func NewClientStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	if cfg.DB.DSN == "" || cfg.DB.DSN == memoryDSN {
		logger.Debug().Msg("session store is kept in memory")
		return &ClientStorages{Sessions: NewMemorySessionStore()}, nil
	}

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Sessions: NewSessionRepository(db, logger),
		db:       db,
	}, nil
}

// Close releases the database connection, if any.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

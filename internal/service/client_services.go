package service

import (
	"github.com/MKhiriev/go-secret-keeper/internal/adapter"
	"github.com/MKhiriev/go-secret-keeper/internal/config"
	"github.com/MKhiriev/go-secret-keeper/internal/logger"
	"github.com/MKhiriev/go-secret-keeper/internal/store"
)

// ClientServices groups the client services that live as long as the
// process. Secrets synchronizers are per dashboard and made by
// NewSynchronizer.
type ClientServices struct {
	Guard     SessionGuard
	Auth      ClientAuthService
	Generator PasswordGenerator

	adapter adapter.ServerAdapter
	sync    config.Sync
	logger  *logger.Logger
}

func NewClientServices(cfg *config.ClientConfig, storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, navigator Navigator, log *logger.Logger) *ClientServices {
	guard := NewClientSessionGuard(storages.Sessions, navigator, cfg.Session.EnforceExpiry, log)

	return &ClientServices{
		Guard:     guard,
		Auth:      NewClientAuthService(serverAdapter, guard, log),
		Generator: NewClientPasswordGenerator(serverAdapter, guard, cfg.Generator, log),
		adapter:   serverAdapter,
		sync:      cfg.Sync,
		logger:    log,
	}
}

// NewSynchronizer creates a SecretsSynchronizer for one dashboard.
func (s *ClientServices) NewSynchronizer(opts ...SynchronizerOption) SecretsSynchronizer {
	return NewSecretsSynchronizer(s.adapter, s.Guard, s.sync, s.logger, opts...)
}

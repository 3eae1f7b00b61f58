// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-secret-keeper/internal/adapter"
	"github.com/MKhiriev/go-secret-keeper/internal/app"
	"github.com/MKhiriev/go-secret-keeper/internal/config"
	"github.com/MKhiriev/go-secret-keeper/internal/logger"
	"github.com/MKhiriev/go-secret-keeper/models"
)

// SynchronizerOption customises a SecretsSynchronizer.
type SynchronizerOption func(*clientSecretsSynchronizer)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) SynchronizerOption {
	return func(s *clientSecretsSynchronizer) {
		s.now = now
	}
}

// WithWait replaces the function used to sleep between retries.
func WithWait(wait WaitFunc) SynchronizerOption {
	return func(s *clientSecretsSynchronizer) {
		s.wait = wait
	}
}

// WithRetryHook registers fn to be called before every automatic retry of
// a rate-limited fetch. fn must not block.
func WithRetryHook(fn func(models.RetryNotice)) SynchronizerOption {
	return func(s *clientSecretsSynchronizer) {
		s.onRetry = fn
	}
}

type clientSecretsSynchronizer struct {
	adapter adapter.ServerAdapter
	guard   SessionGuard
	cfg     config.Sync

	governor *fetchGovernor
	wait     WaitFunc
	onRetry  func(models.RetryNotice)
	now      func() time.Time

	// mu guards secrets and closed.
	mu      sync.RWMutex
	secrets []models.Secret
	closed  bool

	lifetime context.Context
	cancel   context.CancelFunc

	logger *logger.Logger
}

// NewSecretsSynchronizer creates a synchronizer with an empty cache. One
// instance serves one open dashboard; Close it when the dashboard is left.
func NewSecretsSynchronizer(serverAdapter adapter.ServerAdapter, guard SessionGuard, cfg config.Sync, log *logger.Logger, opts ...SynchronizerOption) SecretsSynchronizer {
	if log == nil {
		log = logger.Nop()
	}

	s := &clientSecretsSynchronizer{
		adapter: serverAdapter,
		guard:   guard,
		cfg:     cfg,
		wait:    waitWithContext,
		onRetry: func(models.RetryNotice) {},
		now:     time.Now,
		secrets: []models.Secret{},
		logger:  log.WithComponent("secrets-sync"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.governor = newFetchGovernor(cfg.MinFetchInterval, newBackoffSchedule(cfg.RetryBaseDelay, cfg.MaxRetries), s.now)
	s.lifetime, s.cancel = context.WithCancel(context.Background())

	return s
}

func (s *clientSecretsSynchronizer) RefreshList(ctx context.Context) error {
	if !s.governor.tryAcquire() {
		s.logger.Debug().Bool("in_flight", s.governor.busy()).Msg("list refresh suppressed")
		return ErrRefreshSuppressed
	}
	defer s.governor.release()

	ctx, stop := s.join(ctx)
	defer stop()

	return s.fetch(ctx, s.governor.schedule)
}

func (s *clientSecretsSynchronizer) CreateSecret(ctx context.Context, fields models.SecretFields) error {
	if strings.TrimSpace(fields.Title) == "" {
		return &ValidationError{Reason: app.MsgTitleRequired}
	}

	ctx, stop := s.join(ctx)
	defer stop()

	if err := s.adapter.CreateSecret(ctx, fields); err != nil {
		// The create call itself is never retried.
		return s.handle(ctx, err, app.MsgCreateFailed)
	}
	s.logger.Info().Msg("secret created")

	// The write has been accepted from here on; a failing refresh below
	// leaves it in place and it shows up with the next successful fetch.
	s.governor.acquire()
	defer s.governor.release()

	if err := s.wait(ctx, s.cfg.CreateSettleDelay); err != nil {
		return fmt.Errorf("%w: %w", ErrCreatedNotRefreshed, err)
	}

	if err := s.fetch(ctx, newBackoffSchedule(s.cfg.CreateRetryBaseDelay, s.cfg.MaxRetries)); err != nil {
		return fmt.Errorf("%w: %w", ErrCreatedNotRefreshed, err)
	}
	return nil
}

func (s *clientSecretsSynchronizer) UpdateSecret(ctx context.Context, id models.SecretID, fields models.SecretFields) (models.Secret, error) {
	ctx, stop := s.join(ctx)
	defer stop()

	updated, err := s.adapter.UpdateSecret(ctx, id, fields)
	if err != nil {
		return models.Secret{}, s.handle(ctx, err, app.MsgUnexpectedError)
	}

	err = s.apply(ctx, func(cached []models.Secret) []models.Secret {
		for i := range cached {
			if cached[i].ID == id {
				patched := slices.Clone(cached)
				patched[i] = updated
				return patched
			}
		}
		return cached
	})
	if err != nil {
		return models.Secret{}, err
	}

	return updated, nil
}

func (s *clientSecretsSynchronizer) DeleteSecret(ctx context.Context, id models.SecretID) error {
	ctx, stop := s.join(ctx)
	defer stop()

	if err := s.adapter.DeleteSecret(ctx, id); err != nil {
		return s.handle(ctx, err, app.MsgUnexpectedError)
	}

	return s.apply(ctx, func(cached []models.Secret) []models.Secret {
		i := slices.IndexFunc(cached, func(secret models.Secret) bool { return secret.ID == id })
		if i < 0 {
			return cached
		}
		return slices.Delete(slices.Clone(cached), i, i+1)
	})
}

func (s *clientSecretsSynchronizer) Secrets() []models.Secret {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.secrets)
}

func (s *clientSecretsSynchronizer) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
}

// fetch lists the secrets and retries on 429 following schedule.
func (s *clientSecretsSynchronizer) fetch(ctx context.Context, schedule *backoffSchedule) error {
	for {
		secrets, err := s.adapter.ListSecrets(ctx)
		if err == nil {
			schedule.reset()
			return s.apply(ctx, func([]models.Secret) []models.Secret {
				return uniqueByID(secrets)
			})
		}

		mapped := s.handle(ctx, err, app.MsgUnexpectedError)
		if !errors.Is(mapped, ErrRateLimited) {
			return mapped
		}

		delay, attempt, ok := schedule.next(retryAfterHint(err))
		if !ok {
			s.logger.Warn().Int("max_retries", s.cfg.MaxRetries).Msg("list fetch still rate limited, giving up")
			return mapped
		}

		s.logger.Info().
			Int("attempt", attempt).
			Dur("delay", delay).
			Msg("list fetch rate limited, retrying")
		s.onRetry(models.RetryNotice{Attempt: attempt, MaxAttempts: s.cfg.MaxRetries, Delay: delay})

		if err = s.wait(ctx, delay); err != nil {
			schedule.reset()
			return err
		}
		s.governor.markAttempt()
	}
}

// handle maps an adapter error and expires the session on 401/403.
func (s *clientSecretsSynchronizer) handle(ctx context.Context, err error, fallback string) error {
	mapped := mapAdapterError(err, fallback)
	if errors.Is(mapped, ErrAuthExpired) {
		s.guard.Expire(context.WithoutCancel(ctx))
	}
	return mapped
}

// apply replaces the cache with patch(cache) unless the call was cancelled
// or the synchronizer closed while the request was running.
func (s *clientSecretsSynchronizer) apply(ctx context.Context, patch func([]models.Secret) []models.Secret) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return context.Canceled
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.secrets = patch(s.secrets)
	return nil
}

// join derives a context that is also cancelled by Close.
func (s *clientSecretsSynchronizer) join(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	unregister := context.AfterFunc(s.lifetime, cancel)

	return ctx, func() {
		unregister()
		cancel()
	}
}

func retryAfterHint(err error) time.Duration {
	var httpErr *adapter.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.RetryAfter
	}
	return 0
}

// uniqueByID keeps the first record of every id.
func uniqueByID(secrets []models.Secret) []models.Secret {
	seen := make(map[models.SecretID]struct{}, len(secrets))
	out := make([]models.Secret, 0, len(secrets))

	for _, secret := range secrets {
		if _, dup := seen[secret.ID]; dup {
			continue
		}
		seen[secret.ID] = struct{}{}
		out = append(out, secret)
	}

	return out
}

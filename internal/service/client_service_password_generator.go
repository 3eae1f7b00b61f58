package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-secret-keeper/internal/adapter"
	"github.com/MKhiriev/go-secret-keeper/internal/app"
	"github.com/MKhiriev/go-secret-keeper/internal/config"
	"github.com/MKhiriev/go-secret-keeper/internal/logger"
	"github.com/MKhiriev/go-secret-keeper/models"
)

// Supported password lengths.
const (
	MinPasswordLength     = 6
	MaxPasswordLength     = 64
	DefaultPasswordLength = 16
)

// ClampPasswordLength limits n to [MinPasswordLength, MaxPasswordLength].
func ClampPasswordLength(n int) int {
	return min(max(n, MinPasswordLength), MaxPasswordLength)
}

type clientPasswordGenerator struct {
	adapter adapter.ServerAdapter
	guard   SessionGuard
	cfg     config.Generator
	now     func() time.Time

	mu            sync.Mutex
	inFlight      bool
	cooldownUntil time.Time

	logger *logger.Logger
}

func NewClientPasswordGenerator(serverAdapter adapter.ServerAdapter, guard SessionGuard, cfg config.Generator, log *logger.Logger) PasswordGenerator {
	if log == nil {
		log = logger.Nop()
	}
	return &clientPasswordGenerator{
		adapter: serverAdapter,
		guard:   guard,
		cfg:     cfg,
		now:     time.Now,
		logger:  log.WithComponent("password-generator"),
	}
}

func (g *clientPasswordGenerator) Generate(ctx context.Context, length int, includeSpecial bool) (string, error) {
	if !g.begin() {
		return "", ErrGeneratorBusy
	}

	password, err := g.adapter.GeneratePassword(ctx, models.GeneratePasswordRequest{
		Length:               ClampPasswordLength(length),
		IncludeSpecialSymbol: includeSpecial,
	})

	cooldown := g.cfg.Cooldown
	defer func() { g.end(cooldown) }()

	switch {
	case err == nil && password == "":
		return "", &RejectedError{Message: app.MsgInvalidResponseFormat, Err: adapter.ErrUnexpectedResponse}
	case err == nil:
		return password, nil
	case errors.Is(err, adapter.ErrTooManyRequests):
		cooldown = max(g.cfg.RateLimitCooldown, retryAfterHint(err))
		return "", &RejectedError{Message: app.MsgGeneratorRateLimited, Err: mapAdapterError(err, app.MsgGenerateFailed)}
	case isAuthFailure(err):
		g.guard.Expire(context.WithoutCancel(ctx))
		return "", mapAdapterError(err, app.MsgGenerateFailed)
	}

	g.logger.Err(err).Msg("password generation failed")
	return "", &RejectedError{Message: app.MsgGenerateFailed, Err: mapAdapterError(err, app.MsgGenerateFailed)}
}

func (g *clientPasswordGenerator) begin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.inFlight || g.now().Before(g.cooldownUntil) {
		return false
	}
	g.inFlight = true
	return true
}

func (g *clientPasswordGenerator) end(cooldown time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.inFlight = false
	g.cooldownUntil = g.now().Add(cooldown)
}

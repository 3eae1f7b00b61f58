// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-secret-keeper/internal/logger"
	"github.com/MKhiriev/go-secret-keeper/internal/store"
	"github.com/MKhiriev/go-secret-keeper/internal/utils"
)

type clientSessionGuard struct {
	sessions      store.SessionStore
	navigator     Navigator
	enforceExpiry bool
	now           func() time.Time

	// mu serialises the read-then-clear of Expire so that one stored
	// credential leads to one navigation.
	mu sync.Mutex

	logger *logger.Logger
}

// NewClientSessionGuard creates a SessionGuard over sessions. navigator may
// be nil, in which case Expire only clears the credential.
func NewClientSessionGuard(sessions store.SessionStore, navigator Navigator, enforceExpiry bool, log *logger.Logger) SessionGuard {
	if navigator == nil {
		navigator = NavigatorFunc(nil)
	}
	if log == nil {
		log = logger.Nop()
	}

	return &clientSessionGuard{
		sessions:      sessions,
		navigator:     navigator,
		enforceExpiry: enforceExpiry,
		now:           time.Now,
		logger:        log.WithComponent("session-guard"),
	}
}

func (g *clientSessionGuard) IsValid(ctx context.Context) bool {
	token, ok := g.current(ctx)
	if !ok {
		return false
	}
	return g.validToken(token)
}

func (g *clientSessionGuard) Invalidate(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.clear(ctx)
}

func (g *clientSessionGuard) GuardRoute(ctx context.Context, protected bool) RouteDecision {
	if !protected || g.IsValid(ctx) {
		return RouteAllow
	}
	return RouteRedirectToEntry
}

func (g *clientSessionGuard) Check(ctx context.Context) {
	token, ok := g.current(ctx)
	if !ok || g.validToken(token) {
		return
	}

	g.logger.Info().Msg("stored session credential is invalid, clearing it")
	g.Invalidate(ctx)
}

func (g *clientSessionGuard) Start(ctx context.Context, token string) error {
	if !utils.HasJWTShape(token) {
		return utils.ErrMalformedToken
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	return g.sessions.Set(ctx, token)
}

func (g *clientSessionGuard) Expire(ctx context.Context) {
	g.mu.Lock()
	_, present := g.current(ctx)
	if present {
		g.clear(ctx)
	}
	g.mu.Unlock()

	if !present {
		return
	}

	g.logger.Warn().Msg("backend rejected the session credential")
	g.navigator.NavigateToEntry()
}

// current returns the stored credential. Storage errors are logged and
// reported as an absent credential.
func (g *clientSessionGuard) current(ctx context.Context) (string, bool) {
	token, err := g.sessions.Get(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrSessionNotFound) {
			g.logger.Err(err).Msg("failed to read session credential")
		}
		return "", false
	}
	return token, token != ""
}

func (g *clientSessionGuard) clear(ctx context.Context) {
	if err := g.sessions.Clear(ctx); err != nil {
		g.logger.Err(err).Msg("failed to clear session credential")
	}
}

func (g *clientSessionGuard) validToken(token string) bool {
	if !utils.HasJWTShape(token) {
		return false
	}
	if !g.enforceExpiry {
		return true
	}

	// Best effort: anything that cannot be decoded counts as expired.
	parsed, err := utils.ParseUnverifiedToken(token)
	if err != nil {
		return false
	}
	return !parsed.Expired(g.now())
}

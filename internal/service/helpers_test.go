package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-secret-keeper/internal/config"
	"github.com/MKhiriev/go-secret-keeper/internal/logger"
	"github.com/MKhiriev/go-secret-keeper/internal/store"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// recordingWait advances the clock instead of sleeping and remembers every
// requested delay.
type recordingWait struct {
	clock *fakeClock

	mu     sync.Mutex
	delays []time.Duration
}

func (w *recordingWait) Wait(ctx context.Context, d time.Duration) error {
	w.mu.Lock()
	w.delays = append(w.delays, d)
	w.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	w.clock.Advance(d)
	return nil
}

func (w *recordingWait) Delays() []time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]time.Duration(nil), w.delays...)
}

// countingNavigator counts NavigateToEntry calls.
type countingNavigator struct {
	calls atomic.Int32
}

func (n *countingNavigator) NavigateToEntry() {
	n.calls.Add(1)
}

func (n *countingNavigator) Calls() int {
	return int(n.calls.Load())
}

const testToken = "h.p.s"

func testSyncConfig() config.Sync {
	return config.Sync{
		MinFetchInterval:     time.Second,
		RetryBaseDelay:       time.Second,
		MaxRetries:           3,
		CreateSettleDelay:    500 * time.Millisecond,
		CreateRetryBaseDelay: 2 * time.Second,
		RefreshInterval:      30 * time.Second,
	}
}

// newTestGuard returns a guard over a memory store holding token, if any.
func newTestGuard(token string) (SessionGuard, store.SessionStore, *countingNavigator) {
	sessions := store.NewMemorySessionStore()
	if token != "" {
		_ = sessions.Set(context.Background(), token)
	}
	nav := &countingNavigator{}
	return NewClientSessionGuard(sessions, nav, false, logger.Nop()), sessions, nav
}

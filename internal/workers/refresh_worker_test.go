package workers

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-secret-keeper/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyRefresher counts RefreshList calls and returns err.
type spyRefresher struct {
	calls atomic.Int64
	err   error
}

func (s *spyRefresher) RefreshList(context.Context) error {
	s.calls.Add(1)
	return s.err
}

type resultRecorder struct {
	mu      sync.Mutex
	results []error
}

func (r *resultRecorder) record(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, err)
}

func (r *resultRecorder) all() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.results...)
}

// ── NewRefreshWorker ─────────────────────────────────────────────────────────

func TestNewRefreshWorker_DefaultInterval(t *testing.T) {
	w := NewRefreshWorker(&spyRefresher{}, 0, nil, nil).(*refreshWorker)
	assert.Equal(t, DefaultRefreshInterval, w.interval)

	w = NewRefreshWorker(&spyRefresher{}, -time.Second, nil, nil).(*refreshWorker)
	assert.Equal(t, DefaultRefreshInterval, w.interval)
}

// ── Run ──────────────────────────────────────────────────────────────────────

func TestRefreshWorker_CallsRefreshList(t *testing.T) {
	spy := &spyRefresher{}
	rec := &resultRecorder{}
	ws := NewWorkers(NewRefreshWorker(spy, 10*time.Millisecond, rec.record, nil))

	ws.Start(context.Background())
	assert.Eventually(t, func() bool { return spy.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	ws.Stop()

	for _, err := range rec.all() {
		assert.NoError(t, err)
	}
}

func TestRefreshWorker_StopsWithContext(t *testing.T) {
	spy := &spyRefresher{}
	ws := NewWorkers(NewRefreshWorker(spy, 10*time.Millisecond, nil, nil))

	ws.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	ws.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, callsAfterStop, spy.calls.Load(), "no refresh may run after Stop")
}

func TestRefreshWorker_SuppressedIsNotReported(t *testing.T) {
	spy := &spyRefresher{err: service.ErrRefreshSuppressed}
	rec := &resultRecorder{}
	ws := NewWorkers(NewRefreshWorker(spy, 10*time.Millisecond, rec.record, nil))

	ws.Start(context.Background())
	assert.Eventually(t, func() bool { return spy.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	ws.Stop()

	assert.Empty(t, rec.all())
}

func TestRefreshWorker_ErrorDoesNotStopWorker(t *testing.T) {
	spy := &spyRefresher{err: service.ErrRateLimited}
	rec := &resultRecorder{}
	ws := NewWorkers(NewRefreshWorker(spy, 10*time.Millisecond, rec.record, nil))

	ws.Start(context.Background())
	assert.Eventually(t, func() bool { return len(rec.all()) >= 3 }, time.Second, 5*time.Millisecond)
	ws.Stop()

	results := rec.all()
	require.NotEmpty(t, results)
	for _, err := range results {
		assert.ErrorIs(t, err, service.ErrRateLimited)
	}
}

package service

import (
	"sync"
	"time"
)

// fetchGovernor collapses redundant list fetches into one. A fetch may start
// only when none is in flight and the previous attempt is at least
// minInterval old. The post-create refresh is exempt from both rules but is
// still counted as in flight.
type fetchGovernor struct {
	mu          sync.Mutex
	inFlight    int
	lastAttempt time.Time
	minInterval time.Duration
	now         func() time.Time

	// schedule is the retry state of RefreshList. It survives a retry and is
	// reset on success and on exhaustion.
	schedule *backoffSchedule
}

func newFetchGovernor(minInterval time.Duration, schedule *backoffSchedule, now func() time.Time) *fetchGovernor {
	return &fetchGovernor{minInterval: minInterval, schedule: schedule, now: now}
}

// tryAcquire marks a fetch as in flight. It returns false when the fetch
// must be dropped.
func (g *fetchGovernor) tryAcquire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if g.inFlight > 0 {
		return false
	}
	if !g.lastAttempt.IsZero() && now.Sub(g.lastAttempt) < g.minInterval {
		return false
	}

	g.inFlight++
	g.lastAttempt = now
	return true
}

// acquire marks a fetch as in flight unconditionally.
func (g *fetchGovernor) acquire() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.inFlight++
	g.lastAttempt = g.now()
}

// markAttempt records a retry of a fetch that is already in flight.
func (g *fetchGovernor) markAttempt() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.lastAttempt = g.now()
}

func (g *fetchGovernor) release() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.inFlight > 0 {
		g.inFlight--
	}
	g.lastAttempt = g.now()
}

func (g *fetchGovernor) busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.inFlight > 0
}

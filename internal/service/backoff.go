package service

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

// WaitFunc blocks for d or until ctx is done.
type WaitFunc func(ctx context.Context, d time.Duration) error

// waitWithContext is the default WaitFunc.
func waitWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// backoffSchedule hands out the delays of one rate-limited operation:
// base, 2*base, 4*base... for at most maxRetries retries. A retry-after hint
// raises a delay but never lowers it, and no delay is shorter than the one
// before it.
type backoffSchedule struct {
	base       time.Duration
	maxRetries int

	backoff retry.Backoff
	attempt int
	last    time.Duration
}

func newBackoffSchedule(base time.Duration, maxRetries int) *backoffSchedule {
	s := &backoffSchedule{base: base, maxRetries: maxRetries}
	s.reset()
	return s
}

// next returns the delay before the upcoming retry and its 1-based number.
// ok is false once the bound is reached; the schedule is then reset.
func (s *backoffSchedule) next(hint time.Duration) (delay time.Duration, attempt int, ok bool) {
	exp, stop := s.backoff.Next()
	if stop {
		s.reset()
		return 0, 0, false
	}

	delay = max(exp, hint, s.last)
	s.attempt++
	s.last = delay

	return delay, s.attempt, true
}

func (s *backoffSchedule) reset() {
	// NewExponential panics on a non-positive base.
	base := max(s.base, time.Nanosecond)
	maxRetries := max(s.maxRetries, 0)
	s.backoff = retry.WithMaxRetries(uint64(maxRetries), retry.NewExponential(base))
	s.attempt = 0
	s.last = 0
}

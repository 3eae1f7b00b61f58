package models

import "time"

// RetryNotice describes a list refresh that was rate limited and is about to
// be retried. It is reported to observers so that a "retrying" banner can be
// shown while the client waits.
type RetryNotice struct {
	// Attempt is the 1-based number of the upcoming retry.
	Attempt int
	// MaxAttempts is the retry bound of the current operation.
	MaxAttempts int
	// Delay is how long the client waits before the retry.
	Delay time.Duration
}

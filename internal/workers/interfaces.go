// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that starts and
// stops several workers as one unit.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks until ctx is cancelled. Workers are started in their own
// goroutine by [Workers.Start].
type Worker interface {
	Run(ctx context.Context)
}

// Refresher is the part of the secrets synchronizer a refresh worker needs.
type Refresher interface {
	RefreshList(ctx context.Context) error
}

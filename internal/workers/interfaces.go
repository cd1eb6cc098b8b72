// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that starts and
// stops several workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker and returns; the worker keeps going in its own
// goroutines until ctx is done or Stop is called. Stop blocks until the
// worker has exited.
type Worker interface {
	Run(ctx context.Context)
	Stop()
}

// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// starting and stopping multiple workers in a unified way.
package workers

import (
	"context"
	"time"
)

// Worker is the interface that must be implemented by any background worker.
//
// Start launches the worker in its own goroutine and returns immediately.
// Stop blocks until that goroutine has exited. Both are safe to call more
// than once.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// StaleRefresher re-reads stale cache entries from the server.
type StaleRefresher interface {
	RefreshStale(ctx context.Context) (int, error)
}

// DefaultRefreshInterval is used when a non-positive interval is configured.
const DefaultRefreshInterval = time.Minute

package server

import "context"

// Server defines the lifecycle contract of the servers managed by this
// package.
//
// RunServer blocks until the server stops. Shutdown stops accepting new
// requests and waits for in-flight ones until ctx is done.
type Server interface {
	RunServer() error
	Shutdown(ctx context.Context) error
}

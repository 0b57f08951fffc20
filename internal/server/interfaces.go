package server

import "context"

// Server defines the lifecycle contract for the transport server managed by
// this package.
type Server interface {
	// RunServer starts serving requests and blocks until SIGINT, SIGTERM or
	// SIGQUIT is received or the listener fails.
	RunServer() error

	// Shutdown gracefully stops the server, waiting for in-flight requests
	// until ctx is done.
	Shutdown(ctx context.Context) error
}

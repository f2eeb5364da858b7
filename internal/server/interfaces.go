package server

import "context"

// Server defines the lifecycle contract for the transport server.
type Server interface {
	// RunServer serves requests until ctx is cancelled or SIGTERM, SIGINT
	// or SIGQUIT arrives, then shuts down gracefully.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server, waiting at most until ctx is
	// done for in-flight requests.
	Shutdown(ctx context.Context) error
}

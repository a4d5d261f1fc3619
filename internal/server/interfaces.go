package server

import "context"

// Server defines the lifecycle contract of the local API server.
type Server interface {
	// RunServer serves requests until ctx is cancelled, then shuts down
	// gracefully. It returns nil after a clean shutdown.
	RunServer(ctx context.Context) error

	// Addr returns the bound listen address once RunServer has started.
	Addr() string
}

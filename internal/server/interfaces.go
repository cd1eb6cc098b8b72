package server

// Server defines the lifecycle contract of the API process.
//
// Implementations block in [RunServer] until shutdown is requested and
// release resources in [Shutdown].
type Server interface {
	// RunServer starts serving requests and the background workers, and
	// blocks until a stop signal arrives.
	RunServer()

	// Shutdown gracefully stops the listener and the workers.
	Shutdown()
}

package server

// Server is the lifecycle contract of a transport server managed by this
// package. Implementations block in [RunServer] until shutdown is requested
// and release their resources in [Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}

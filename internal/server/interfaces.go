package server

// Server is the lifecycle contract of a transport server. RunServer
// blocks until the listener stops; Shutdown drains in-flight requests
// and releases resources.
type Server interface {
	RunServer()
	Shutdown()
}

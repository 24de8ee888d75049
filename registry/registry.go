// Package registry resolves logical JSON-RPC service names to live server
// endpoints. A transport consults it before dialing, so stubs can target
// "the volumes service" rather than one hard-coded address.
package registry

import "context"

// Endpoint describes one reachable server for a service.
type Endpoint struct {
	Addr    string // host:port for stream transports, or a full URL for HTTP
	Weight  int    // relative capacity, consumed by weighted balancers
	Version string
}

type Registry interface {
	// Register announces an endpoint under a service name with a TTL lease.
	Register(ctx context.Context, service string, ep Endpoint, ttl int64) error

	// Deregister removes an endpoint, typically during graceful shutdown.
	Deregister(ctx context.Context, service string, addr string) error

	// Discover returns all currently registered endpoints for a service.
	Discover(ctx context.Context, service string) ([]Endpoint, error)

	// Watch emits the full endpoint list whenever it changes.
	Watch(ctx context.Context, service string) <-chan []Endpoint
}

package transport

import (
	"context"
	"sync"

	"jrpc/loadbalance"
	"jrpc/registry"
)

// DiscoveryTransport resolves the target server through a registry and a
// load-balancing strategy on every call, then delegates the exchange to a
// per-endpoint transport built by the factory.
//
//	Call → registry.Discover(service) → balancer.Pick → factory(addr).Call
//
// Per-endpoint transports are cached, so an HTTP transport keeps its client
// and a pooled conn transport keeps its connections across calls.
type DiscoveryTransport struct {
	registry registry.Registry
	balancer loadbalance.Balancer
	service  string
	factory  func(addr string) (Transport, error)

	mu         sync.Mutex
	transports map[string]Transport
}

func NewDiscoveryTransport(reg registry.Registry, bal loadbalance.Balancer, service string,
	factory func(addr string) (Transport, error)) *DiscoveryTransport {
	return &DiscoveryTransport{
		registry:   reg,
		balancer:   bal,
		service:    service,
		factory:    factory,
		transports: make(map[string]Transport),
	}
}

func (d *DiscoveryTransport) Call(ctx context.Context, request []byte) ([]byte, error) {
	endpoints, err := d.registry.Discover(ctx, d.service)
	if err != nil {
		return nil, err
	}

	ep, err := d.balancer.Pick(endpoints)
	if err != nil {
		return nil, err
	}

	t, err := d.transportFor(ep.Addr)
	if err != nil {
		return nil, err
	}

	return t.Call(ctx, request)
}

func (d *DiscoveryTransport) transportFor(addr string) (Transport, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.transports[addr]; ok {
		return t, nil
	}
	t, err := d.factory(addr)
	if err != nil {
		return nil, err
	}
	d.transports[addr] = t
	return t, nil
}

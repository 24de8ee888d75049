// Package loadbalance picks one endpoint out of the set a registry returned.
//
// Strategies:
//   - RoundRobin:      equal-capacity servers, spread calls evenly
//   - WeightedRandom:  heterogeneous servers, spread by declared weight
package loadbalance

import "jrpc/registry"

// Balancer selects the endpoint for one call. Pick runs on every invocation,
// so implementations must be goroutine-safe.
type Balancer interface {
	Pick(endpoints []registry.Endpoint) (*registry.Endpoint, error)

	// Name identifies the strategy in logs.
	Name() string
}

package loadbalance

import (
	"fmt"
	"math/rand"

	"jrpc/registry"
)

// WeightedRandomBalancer picks endpoints randomly, proportional to their
// declared weight. Endpoints that never declared a weight fall back to a
// uniform pick.
type WeightedRandomBalancer struct{}

func (b *WeightedRandomBalancer) Pick(endpoints []registry.Endpoint) (*registry.Endpoint, error) {
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("no endpoints available")
	}

	totalWeight := 0
	for _, ep := range endpoints {
		totalWeight += ep.Weight
	}

	// All weights zero (or negative): treat every endpoint as equal.
	if totalWeight <= 0 {
		return &endpoints[rand.Intn(len(endpoints))], nil
	}

	n := rand.Intn(totalWeight)
	for i := range endpoints {
		n -= endpoints[i].Weight
		if n < 0 {
			return &endpoints[i], nil
		}
	}

	return nil, fmt.Errorf("unexpected error in weighted random selection")
}

func (b *WeightedRandomBalancer) Name() string {
	return "WeightedRandom"
}

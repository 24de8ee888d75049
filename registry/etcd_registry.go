// etcd-backed Registry.
//
// Layout in etcd:
//
//	Key:   /jrpc/{service}/{addr}
//	Value: JSON-encoded Endpoint
//
// Registration rides on a TTL lease: when a server dies without
// deregistering, the lease expires and the endpoint disappears on its own,
// so clients never keep routing to a ghost.
package registry

import (
	"context"
	"encoding/json"

	clientv3 "go.etcd.io/etcd/client/v3"
)

const keyPrefix = "/jrpc/"

// EtcdRegistry implements Registry on top of etcd v3. The embedded client is
// safe for concurrent use, so one EtcdRegistry can serve many transports.
type EtcdRegistry struct {
	client *clientv3.Client
}

func NewEtcdRegistry(endpoints []string) (*EtcdRegistry, error) {
	c, err := clientv3.New(clientv3.Config{
		Endpoints: endpoints,
	})
	if err != nil {
		return nil, err
	}
	return &EtcdRegistry{client: c}, nil
}

func serviceKey(service, addr string) string {
	return keyPrefix + service + "/" + addr
}

// Register grants a lease, stores the endpoint under it, and keeps the lease
// alive in the background. The lease id stays local so that several servers
// can share one EtcdRegistry without racing on struct state.
func (r *EtcdRegistry) Register(ctx context.Context, service string, ep Endpoint, ttl int64) error {
	lease, err := r.client.Grant(ctx, ttl)
	if err != nil {
		return err
	}

	value, err := json.Marshal(ep)
	if err != nil {
		return err
	}

	_, err = r.client.Put(ctx, serviceKey(service, ep.Addr), string(value), clientv3.WithLease(lease.ID))
	if err != nil {
		return err
	}

	keepAlive, err := r.client.KeepAlive(ctx, lease.ID)
	if err != nil {
		return err
	}

	// Drain keep-alive acks so the channel never fills up.
	go func() {
		for range keepAlive {
		}
	}()
	return nil
}

func (r *EtcdRegistry) Deregister(ctx context.Context, service string, addr string) error {
	_, err := r.client.Delete(ctx, serviceKey(service, addr))
	return err
}

// Discover lists every endpoint under the service prefix.
func (r *EtcdRegistry) Discover(ctx context.Context, service string) ([]Endpoint, error) {
	resp, err := r.client.Get(ctx, keyPrefix+service+"/", clientv3.WithPrefix())
	if err != nil {
		return nil, err
	}

	endpoints := make([]Endpoint, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var ep Endpoint
		if err := json.Unmarshal(kv.Value, &ep); err != nil {
			continue // skip malformed entries
		}
		endpoints = append(endpoints, ep)
	}
	return endpoints, nil
}

// Watch re-lists the service on every change event under its prefix.
// Re-fetching the full list is simpler than folding individual events into
// local state, and endpoint lists are small.
func (r *EtcdRegistry) Watch(ctx context.Context, service string) <-chan []Endpoint {
	out := make(chan []Endpoint, 1)

	go func() {
		defer close(out)
		watchChan := r.client.Watch(ctx, keyPrefix+service+"/", clientv3.WithPrefix())
		for range watchChan {
			endpoints, err := r.Discover(ctx, service)
			if err != nil {
				continue
			}
			select {
			case out <- endpoints:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// Close releases the underlying etcd client.
func (r *EtcdRegistry) Close() error {
	return r.client.Close()
}

// Connection pooling for ConnTransport.
//
// The pool uses a buffered channel as a FIFO queue: channels are
// concurrency-safe and blocking on empty comes for free. Connections are
// created lazily and a connection that failed an exchange is discarded
// rather than returned.
package transport

import (
	"context"
	"io"
	"sync"
)

// ConnPool manages reusable stream connections to a single server.
type ConnPool struct {
	mu       sync.Mutex
	idle     chan *ConnTransport
	maxConns int
	curConns int
	factory  func() (io.ReadWriteCloser, error)
}

// NewConnPool creates an empty pool that grows on demand up to maxConns.
func NewConnPool(maxConns int, factory func() (io.ReadWriteCloser, error)) *ConnPool {
	return &ConnPool{
		idle:     make(chan *ConnTransport, maxConns),
		maxConns: maxConns,
		factory:  factory,
	}
}

// Get borrows a transport from the pool:
//  1. take an idle one if available
//  2. otherwise dial a new connection while under the limit
//  3. at the limit, block until a borrowed one is returned
func (p *ConnPool) Get() (*ConnTransport, error) {
	select {
	case t := <-p.idle:
		return t, nil
	default:
		p.mu.Lock()
		if p.curConns < p.maxConns {
			p.curConns++
			p.mu.Unlock()
			conn, err := p.factory()
			if err != nil {
				p.mu.Lock()
				p.curConns--
				p.mu.Unlock()
				return nil, err
			}
			return NewConnTransport(conn), nil
		}
		p.mu.Unlock()
		return <-p.idle, nil
	}
}

// Put returns a borrowed transport. A broken transport is closed and its
// slot freed so Get can dial a replacement.
func (p *ConnPool) Put(t *ConnTransport, broken bool) {
	if broken {
		t.Close()
		p.mu.Lock()
		p.curConns--
		p.mu.Unlock()
		return
	}
	p.idle <- t
}

// Close shuts down all idle connections. Borrowed connections are closed
// when they are returned broken or garbage collected with their owner.
func (p *ConnPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	close(p.idle)
	for t := range p.idle {
		t.Close()
		p.curConns--
	}
	return nil
}

// PoolTransport borrows a pooled connection for exactly one exchange.
// Unlike a bare ConnTransport, concurrent calls proceed in parallel on
// distinct connections.
type PoolTransport struct {
	pool *ConnPool
}

func NewPoolTransport(maxConns int, factory func() (io.ReadWriteCloser, error)) *PoolTransport {
	return &PoolTransport{pool: NewConnPool(maxConns, factory)}
}

func (p *PoolTransport) Call(ctx context.Context, request []byte) ([]byte, error) {
	t, err := p.pool.Get()
	if err != nil {
		return nil, err
	}

	response, err := t.Call(ctx, request)
	p.pool.Put(t, err != nil)
	return response, err
}

// Close releases the underlying pool.
func (p *PoolTransport) Close() error {
	return p.pool.Close()
}

var _ Transport = (*PoolTransport)(nil)

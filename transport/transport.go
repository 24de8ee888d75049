// Package transport carries serialized JSON-RPC envelopes to a remote server
// and brings the raw response back.
//
// The invocation pipeline depends only on the Transport interface; everything
// behind it — connection handling, pooling, discovery, timeouts — is this
// package's business and never the stub's.
package transport

import "context"

// Transport performs one synchronous request/response exchange.
// Implementations must be safe for concurrent use.
type Transport interface {
	Call(ctx context.Context, request []byte) ([]byte, error)
}

// Func adapts a plain function to the Transport interface.
type Func func(ctx context.Context, request []byte) ([]byte, error)

func (f Func) Call(ctx context.Context, request []byte) ([]byte, error) {
	return f(ctx, request)
}

// Package middleware wraps a Transport with cross-cutting behavior: logging,
// rate limiting, retry, timeouts. The invocation core never retries or times
// out on its own; anything of that kind is opt-in here, at the transport
// boundary.
package middleware

import (
	"context"

	"jrpc/transport"
)

// HandlerFunc has the same shape as Transport.Call: one serialized request
// in, one raw response out.
type HandlerFunc func(ctx context.Context, request []byte) ([]byte, error)

type Middleware func(next HandlerFunc) HandlerFunc

// Chain combines several middlewares into one. Chain(A, B, C)(h) behaves as
// A(B(C(h))): A sees the call first and the result last.
func Chain(middlewares ...Middleware) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}

// Apply wraps a transport in the given middlewares.
func Apply(t transport.Transport, middlewares ...Middleware) transport.Transport {
	return transport.Func(Chain(middlewares...)(t.Call))
}

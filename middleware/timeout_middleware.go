package middleware

import (
	"context"
	"time"
)

// TimeoutMiddleware bounds each exchange with a deadline. The transport sees
// the derived context, so deadline-aware transports abort on their own; for
// the rest, the caller is released when the deadline passes even though the
// exchange goroutine may still be draining.
func TimeoutMiddleware(timeout time.Duration) Middleware {
	type result struct {
		response []byte
		err      error
	}
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, request []byte) ([]byte, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			done := make(chan result, 1)
			go func() {
				response, err := next(ctx, request)
				done <- result{response, err}
			}()

			select {
			case r := <-done:
				return r.response, r.err
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
}

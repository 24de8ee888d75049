package middleware

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"
)

// RetryMiddleware retries failed exchanges up to maxRetries times with
// exponential backoff, but only for failures that can plausibly heal
// (timeouts, refused connections). Remote errors never reach this layer —
// they arrive as successful exchanges carrying an error envelope.
func RetryMiddleware(maxRetries int, baseDelay time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, request []byte) ([]byte, error) {
			response, err := next(ctx, request)
			for attempt := 0; attempt < maxRetries && err != nil && retryable(err); attempt++ {
				select {
				case <-time.After(baseDelay * time.Duration(1<<attempt)):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
				response, err = next(ctx, request)
			}
			return response, err
		}
	}
}

func retryable(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return strings.Contains(err.Error(), "connection refused")
}

package middleware

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// LoggingMiddleware records one line per exchange: payload sizes, duration
// and the outcome. Passing nil uses the logrus standard logger.
func LoggingMiddleware(log logrus.FieldLogger) Middleware {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, request []byte) ([]byte, error) {
			start := time.Now()
			response, err := next(ctx, request)

			entry := log.WithFields(logrus.Fields{
				"bytes_out": len(request),
				"bytes_in":  len(response),
				"duration":  time.Since(start),
			})
			if err != nil {
				entry.WithError(err).Warn("jsonrpc exchange failed")
			} else {
				entry.Debug("jsonrpc exchange")
			}
			return response, err
		}
	}
}

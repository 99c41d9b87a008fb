package rpc

import (
	"context"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RequestIDHeader is echoed back on every response
const RequestIDHeader = "X-Request-ID"

type contextKey string

const requestIDKey contextKey = "request_id"

// NewLoggingInterceptor tags each call with a request id, attaches a
// request-scoped logger to the context and logs the outcome.
func NewLoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()

			requestID := req.Header().Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			logger := log.With().
				Str("request_id", requestID).
				Str("procedure", req.Spec().Procedure).
				Logger()
			ctx = context.WithValue(logger.WithContext(ctx), requestIDKey, requestID)

			res, err := next(ctx, req)

			event := logger.Info()
			if err != nil {
				event = logger.Warn().Err(err).Str("code", connect.CodeOf(err).String())
			}
			event.Dur("duration", time.Since(start)).Msg("request completed")

			if res != nil {
				res.Header().Set(RequestIDHeader, requestID)
			}
			return res, err
		}
	}
}

// RequestID returns the id assigned by NewLoggingInterceptor
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// Logger returns the request-scoped logger, or the global one outside a call
func Logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}

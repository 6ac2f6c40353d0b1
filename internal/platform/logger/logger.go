package logger

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// Setup configures the global zerolog logger.
func Setup(isLocalDev bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if isLocalDev {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// WithRequest returns a context carrying a logger tagged with the request id
// and, when the request is traced, the trace and span ids.
func WithRequest(ctx context.Context, requestID string) context.Context {
	builder := log.With()
	if requestID != "" {
		builder = builder.Str("request_id", requestID)
	}
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.HasTraceID() {
		builder = builder.Str("trace_id", sc.TraceID().String()).Str("span_id", sc.SpanID().String())
	}
	l := builder.Logger()
	return l.WithContext(ctx)
}

// FromContext returns the request logger, falling back to the global one.
func FromContext(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return &log.Logger
	}
	return l
}

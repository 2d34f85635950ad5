// Package requestctx carries per-request metadata below the transport layer
// so domain services can log with the caller's request id.
package requestctx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

type Meta struct {
	RequestID string
	ClientIP  string
}

func With(ctx context.Context, meta Meta) context.Context {
	return context.WithValue(ctx, ctxKey{}, meta)
}

func From(ctx context.Context) Meta {
	meta, _ := ctx.Value(ctxKey{}).(Meta)
	return meta
}

func RequestID(ctx context.Context) string {
	return From(ctx).RequestID
}

// Logger returns the default logger annotated with whatever metadata ctx holds.
func Logger(ctx context.Context) *slog.Logger {
	logger := slog.Default()
	meta := From(ctx)
	if meta.RequestID != "" {
		logger = logger.With("requestId", meta.RequestID)
	}
	if meta.ClientIP != "" {
		logger = logger.With("ip", meta.ClientIP)
	}
	return logger
}

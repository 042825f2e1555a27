// Package correlation carries the request correlation id through a context.
package correlation

import (
	"context"
	"log/slog"
)

const Header = "X-Correlation-Id"

type ctxKey struct{}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}

// Logger returns base annotated with the correlation id, if ctx has one.
func Logger(ctx context.Context, base *slog.Logger) *slog.Logger {
	if id := FromContext(ctx); id != "" {
		return base.With(slog.String("correlation_id", id))
	}
	return base
}

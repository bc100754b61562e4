package logger

import (
	"context"
	"log/slog"
)

type ctxKey string

const loggerKey ctxKey = "logger"

// With returns a new context whose logger carries the given fields.
func With(ctx context.Context, fields ...any) context.Context {
	return Attach(ctx, From(ctx).With(fields...))
}

// Attach stores l in ctx.
func Attach(ctx context.Context, l *slog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, l)
}

// From returns the logger stored in context, or default if missing.
func From(ctx context.Context) *slog.Logger {
	if l, ok := FromContext(ctx); ok {
		return l
	}
	return LoggerWrapper()
}

// FromContext reports the logger stored in ctx, if any.
func FromContext(ctx context.Context) (*slog.Logger, bool) {
	if ctx == nil {
		return nil, false
	}
	l, ok := ctx.Value(loggerKey).(*slog.Logger)
	return l, ok && l != nil
}

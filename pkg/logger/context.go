package logger

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// With stores on ctx a logger extended with fields. Later handlers pick it up with From.
func With(ctx context.Context, fields ...any) context.Context {
	return context.WithValue(ctx, ctxKey{}, From(ctx).With(fields...))
}

// WithUserID tags every later line of the request with the authenticated caller.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return With(ctx, "user_id", userID)
}

// From returns the request scoped logger, or the process logger outside a request.
func From(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
			return l
		}
	}
	return LoggerWrapper()
}

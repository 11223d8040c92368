package middleware

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
)

// ContextKey is a private type for request context keys.
type ContextKey string

const CallerCtxKey = ContextKey("caller")

func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, CallerCtxKey, caller)
}

// CallerFromContext returns the zero Caller when the request carried no identity.
func CallerFromContext(ctx context.Context) domain.Caller {
	caller, _ := ctx.Value(CallerCtxKey).(domain.Caller)
	return caller
}

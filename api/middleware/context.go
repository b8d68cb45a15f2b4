package middleware

import (
	"context"

	"github.com/angelmondragon/crmgraphql-backend/pkg/auth"
)

type contextKey string

const ctxCaller contextKey = "caller"

// Caller is the authenticated identity seeded by the Auth middleware.
type Caller struct {
	Payload auth.TokenPayload
}

// CallerFromContext returns the authenticated caller, or nil when the request
// carried no credentials.
func CallerFromContext(ctx context.Context) *Caller {
	if ctx == nil {
		return nil
	}
	if caller, ok := ctx.Value(ctxCaller).(*Caller); ok {
		return caller
	}
	return nil
}

// WithCaller injects the caller into the context.
func WithCaller(ctx context.Context, caller *Caller) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCaller, caller)
}

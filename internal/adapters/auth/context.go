package auth

import (
	"context"

	"github.com/philly/member-admin/internal/authz/domain"
)

type contextKey string

const callerContextKey contextKey = "caller"

// WithCaller stores caller on ctx.
func WithCaller(ctx context.Context, caller *domain.Caller) context.Context {
	return context.WithValue(ctx, callerContextKey, caller)
}

// CallerFrom returns the authenticated caller, or nil for anonymous requests.
func CallerFrom(ctx context.Context) *domain.Caller {
	caller, _ := ctx.Value(callerContextKey).(*domain.Caller)
	return caller
}

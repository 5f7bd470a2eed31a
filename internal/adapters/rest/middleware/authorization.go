package middleware

import (
	"net/http"

	"github.com/philly/member-admin/internal/adapters/auth"
	"github.com/philly/member-admin/internal/authz/application"
	"github.com/philly/member-admin/internal/authz/domain"
)

// Authorizer guards whole routes with a gate check. Services still run their
// own checks; this is for routes that have no service call behind them or
// need a page-level requirement.
type Authorizer struct {
	gate *application.Gate
}

// NewAuthorizer creates a new route authorizer
func NewAuthorizer(gate *application.Gate) *Authorizer {
	return &Authorizer{gate: gate}
}

// Require rejects the request with 401 when there is no caller and 403 when
// the caller does not satisfy permissions under policy. operation names the
// decision in logs and metrics.
func (a *Authorizer) Require(operation string, policy domain.Policy, permissions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if err := a.gate.Authorize(ctx, auth.CallerFrom(ctx), operation, policy, permissions...); err != nil {
				WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireCaller only demands an authenticated caller.
func (a *Authorizer) RequireCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.CallerFrom(r.Context()) == nil {
			WriteError(w, application.ErrUnauthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}

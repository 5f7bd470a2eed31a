package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/philly/member-admin/internal/adapters/auth"
	"github.com/philly/member-admin/internal/authz/application"
	"github.com/philly/member-admin/internal/authz/domain"
	"github.com/philly/member-admin/internal/authz/permission"
	"github.com/philly/member-admin/internal/platform/logger"
	"github.com/philly/member-admin/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func newTestAuthorizer() (*Authorizer, *metrics.Metrics) {
	m := metrics.NewMetrics()
	return NewAuthorizer(application.NewGate(m, logger.Nop{})), m
}

func run(handler http.Handler, caller *domain.Caller) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/permissions", nil)
	if caller != nil {
		req = req.WithContext(auth.WithCaller(req.Context(), caller))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

var noContent = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestAuthorizer_Require(t *testing.T) {
	tests := []struct {
		name     string
		policy   domain.Policy
		caller   *domain.Caller
		expected int
		outcome  string
	}{
		{
			name:     "anonymous",
			policy:   domain.PolicyAll,
			caller:   nil,
			expected: http.StatusUnauthorized,
			outcome:  metrics.OutcomeUnauthenticated,
		},
		{
			name:     "all satisfied",
			policy:   domain.PolicyAll,
			caller:   domain.NewCaller("u-1", domain.PermissionMapFrom(permission.PermissionView, permission.RoleView)),
			expected: http.StatusNoContent,
			outcome:  metrics.OutcomeAllowed,
		},
		{
			name:     "all missing one",
			policy:   domain.PolicyAll,
			caller:   domain.NewCaller("u-1", domain.PermissionMapFrom(permission.PermissionView)),
			expected: http.StatusForbidden,
			outcome:  metrics.OutcomeDenied,
		},
		{
			name:     "any with one",
			policy:   domain.PolicyAny,
			caller:   domain.NewCaller("u-1", domain.PermissionMapFrom(permission.RoleView)),
			expected: http.StatusNoContent,
			outcome:  metrics.OutcomeAllowed,
		},
		{
			name:     "explicit false is not granted",
			policy:   domain.PolicyAny,
			caller:   domain.NewCaller("u-1", domain.PermissionMap{permission.PermissionView: false, permission.RoleView: false}),
			expected: http.StatusForbidden,
			outcome:  metrics.OutcomeDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authorizer, m := newTestAuthorizer()
			handler := authorizer.Require("permissions.list", tt.policy, permission.PermissionView, permission.RoleView)(noContent)

			rec := run(handler, tt.caller)

			assert.Equal(t, tt.expected, rec.Code)
			assert.Equal(t, float64(1), testutil.ToFloat64(m.GateDecisions().WithLabelValues("permissions.list", tt.outcome)))
		})
	}
}

func TestAuthorizer_RequireCaller(t *testing.T) {
	authorizer, _ := newTestAuthorizer()
	handler := authorizer.RequireCaller(noContent)

	assert.Equal(t, http.StatusUnauthorized, run(handler, nil).Code)
	assert.Equal(t, http.StatusNoContent, run(handler, domain.NewCaller("u-1", nil)).Code)
}

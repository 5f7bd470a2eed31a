package application

import (
	"context"

	"github.com/philly/member-admin/internal/authz/domain"
	"github.com/philly/member-admin/internal/platform/logger"
	"github.com/philly/member-admin/internal/platform/metrics"
	"github.com/philly/member-admin/internal/platform/result"
)

// DecisionRecorder receives one call per gate decision.
type DecisionRecorder interface {
	RecordGateDecision(operation, outcome string)
}

// Gate runs the authorization gate on behalf of services, middleware and
// the check endpoint, and records every decision.
type Gate struct {
	decisions DecisionRecorder
	logger    logger.Logger
}

// NewGate creates a new gate
func NewGate(decisions DecisionRecorder, logger logger.Logger) *Gate {
	return &Gate{decisions: decisions, logger: logger}
}

// Evaluate runs domain.Check and records the outcome under operation.
func (g *Gate) Evaluate(ctx context.Context, caller *domain.Caller, operation string, required []string, policy domain.Policy) domain.CheckResult {
	check := domain.Check(caller, required, policy)

	switch {
	case caller == nil:
		g.decisions.RecordGateDecision(operation, metrics.OutcomeUnauthenticated)
	case check.Satisfied:
		g.decisions.RecordGateDecision(operation, metrics.OutcomeAllowed)
	default:
		g.decisions.RecordGateDecision(operation, metrics.OutcomeDenied)
	}

	return check
}

// Authorize turns a gate decision into an error: ErrUnauthenticated without a
// caller, ErrUnauthorized when the policy is not satisfied.
func (g *Gate) Authorize(ctx context.Context, caller *domain.Caller, operation string, policy domain.Policy, required ...string) error {
	check := g.Evaluate(ctx, caller, operation, required, policy)
	if caller == nil {
		g.logger.Warn(ctx, "unauthenticated request denied",
			"operation", operation,
		)
		return ErrUnauthenticated
	}
	if !check.Satisfied {
		g.logger.Warn(ctx, "permission denied",
			"operation", operation,
			"user_id", caller.UserID,
			"required", required,
			"policy", policy.String(),
			"matched", check.Matched,
		)
		return ErrUnauthorized
	}
	return nil
}

// Check answers "does the current caller satisfy required under policy".
// Denial is a successful answer with Satisfied false.
func (g *Gate) Check(ctx context.Context, caller *domain.Caller, required []string, policy domain.Policy) result.Result[domain.CheckResult] {
	if caller == nil {
		return result.FromError[domain.CheckResult](ErrUnauthenticated)
	}
	if len(required) == 0 {
		return result.FromError[domain.CheckResult](ErrEmptyRequirement)
	}
	return result.OK(g.Evaluate(ctx, caller, "authz.check", required, policy), "check completed")
}

package domain

import (
	"fmt"
	"strings"
)

// Policy decides when a partial match of required permissions is enough.
type Policy int

const (
	// PolicyAny is satisfied when at least one required permission is held.
	PolicyAny Policy = iota + 1
	// PolicyAll is satisfied only when every required permission is held.
	PolicyAll
)

func (p Policy) String() string {
	switch p {
	case PolicyAny:
		return "any"
	case PolicyAll:
		return "all"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy accepts "any" or "all", case-insensitively.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "any":
		return PolicyAny, nil
	case "all":
		return PolicyAll, nil
	}
	return 0, fmt.Errorf("unknown policy %q", s)
}

// CheckResult is the outcome of a gate check.
type CheckResult struct {
	// Matched is the subset of the required permissions the caller holds,
	// in the order they were required.
	Matched   []string
	Satisfied bool
}

// Check is the authorization gate. It has no side effects and never fails:
// a nil caller, an empty requirement list or an unknown policy all produce
// an unsatisfied result. IDs outside the registry are simply not held.
func Check(caller *Caller, required []string, policy Policy) CheckResult {
	if caller == nil || len(required) == 0 {
		return CheckResult{Matched: []string{}}
	}

	matched := matchPermissions(caller, required)

	switch policy {
	case PolicyAny:
		return CheckResult{Matched: matched, Satisfied: satisfiesAny(matched)}
	case PolicyAll:
		return CheckResult{Matched: matched, Satisfied: satisfiesAll(matched, required)}
	default:
		return CheckResult{Matched: matched}
	}
}

func matchPermissions(caller *Caller, required []string) []string {
	matched := make([]string, 0, len(required))
	for _, id := range required {
		if caller.Has(id) {
			matched = append(matched, id)
		}
	}
	return matched
}

func satisfiesAny(matched []string) bool {
	return len(matched) > 0
}

func satisfiesAll(matched, required []string) bool {
	return len(matched) == len(required)
}

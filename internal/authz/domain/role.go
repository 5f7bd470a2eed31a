package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Error definitions for role operations
var (
	ErrRoleNameEmpty     = errors.New("role name cannot be empty")
	ErrInvalidRoleStatus = errors.New("invalid role status")
)

// RoleStatus controls whether a role can be newly assigned.
type RoleStatus string

const (
	RoleStatusActive   RoleStatus = "active"
	RoleStatusInactive RoleStatus = "inactive"
)

// IsValid reports whether s is one of the known statuses.
func (s RoleStatus) IsValid() bool {
	return s == RoleStatusActive || s == RoleStatusInactive
}

// ParseRoleStatus converts user input into a RoleStatus.
func ParseRoleStatus(s string) (RoleStatus, error) {
	status := RoleStatus(strings.TrimSpace(s))
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRoleStatus, s)
	}
	return status, nil
}

// Role is a named, ranked bundle of permission IDs.
//
// Users reference roles by Name, not by ID. Renaming a role leaves existing
// user assignments pointing at the old name.
type Role struct {
	ID          string
	Name        string
	Description string
	Permissions []string
	Rank        int
	Status      RoleStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CreatedBy   string
	UpdatedBy   string
}

// RoleChanges is the full set of client-editable fields of a role.
type RoleChanges struct {
	Name        string
	Description string
	Rank        int
	Permissions []string
	Status      RoleStatus
}

// NewRole creates an active custom role. The ID is assigned by the store.
func NewRole(name, description string, rank int, permissions []string, actorID string, now time.Time) (*Role, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrRoleNameEmpty
	}
	return &Role{
		Name:        name,
		Description: description,
		Permissions: clonePermissions(permissions),
		Rank:        rank,
		Status:      RoleStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   actorID,
		UpdatedBy:   actorID,
	}, nil
}

// Apply overwrites every editable field and stamps the audit fields.
func (r *Role) Apply(changes RoleChanges, actorID string, now time.Time) error {
	if strings.TrimSpace(changes.Name) == "" {
		return ErrRoleNameEmpty
	}
	if !changes.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRoleStatus, changes.Status)
	}
	r.Name = changes.Name
	r.Description = changes.Description
	r.Rank = changes.Rank
	r.Permissions = clonePermissions(changes.Permissions)
	r.Status = changes.Status
	r.touch(actorID, now)
	return nil
}

// SetStatus changes only the status and audit fields.
func (r *Role) SetStatus(status RoleStatus, actorID string, now time.Time) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRoleStatus, status)
	}
	r.Status = status
	r.touch(actorID, now)
	return nil
}

// IsDefault reports whether r is one of the built-in system roles.
func (r *Role) IsDefault() bool {
	return IsDefaultRoleID(r.ID)
}

// IsActive reports whether the role can be newly assigned.
// Default roles are always active.
func (r *Role) IsActive() bool {
	return r.IsDefault() || r.Status == RoleStatusActive
}

// Clone returns a deep copy.
func (r *Role) Clone() *Role {
	c := *r
	c.Permissions = clonePermissions(r.Permissions)
	return &c
}

func (r *Role) touch(actorID string, now time.Time) {
	r.UpdatedAt = now
	r.UpdatedBy = actorID
}

func clonePermissions(p []string) []string {
	if p == nil {
		return []string{}
	}
	return append([]string(nil), p...)
}

// SortNamesByRank orders role names ascending by the rank of the role they
// name. Names with equal rank keep their input order. Every name must have an
// entry in ranks.
func SortNamesByRank(names []string, ranks map[string]int) []string {
	sorted := append([]string(nil), names...)
	slices.SortStableFunc(sorted, func(a, b string) int {
		return ranks[a] - ranks[b]
	})
	return sorted
}

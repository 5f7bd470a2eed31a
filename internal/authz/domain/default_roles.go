package domain

import (
	"time"

	"github.com/philly/member-admin/internal/authz/permission"
)

// Identity of the two system roles. They are never persisted.
const (
	DefaultUserRoleID       = "1"
	DefaultOperatorRoleID   = "2"
	DefaultUserRoleName     = "user"
	DefaultOperatorRoleName = "operator"

	// SystemActor is recorded as creator of the default roles.
	SystemActor = "system"
)

// Ranks of the default roles.
const (
	DefaultOperatorRoleRank = 0
	DefaultUserRoleRank     = 1
)

// DefaultRoles returns fresh copies of the two system roles, user first.
// The operator bundle is computed from the registry on every call.
func DefaultRoles() []*Role {
	return []*Role{defaultUserRole(), defaultOperatorRole()}
}

// DefaultRoleByName resolves a reserved name. The match is case-sensitive.
func DefaultRoleByName(name string) (*Role, bool) {
	switch name {
	case DefaultUserRoleName:
		return defaultUserRole(), true
	case DefaultOperatorRoleName:
		return defaultOperatorRole(), true
	}
	return nil, false
}

// IsDefaultRoleID reports whether id belongs to a system role.
func IsDefaultRoleID(id string) bool {
	return id == DefaultUserRoleID || id == DefaultOperatorRoleID
}

// IsReservedRoleName reports whether name is taken by a system role.
func IsReservedRoleName(name string) bool {
	return name == DefaultUserRoleName || name == DefaultOperatorRoleName
}

func defaultUserRole() *Role {
	return &Role{
		ID:          DefaultUserRoleID,
		Name:        DefaultUserRoleName,
		Description: "Default role held by every member",
		Permissions: permission.UserPermissions(),
		Rank:        DefaultUserRoleRank,
		Status:      RoleStatusActive,
		CreatedAt:   time.Time{},
		UpdatedAt:   time.Time{},
		CreatedBy:   SystemActor,
		UpdatedBy:   SystemActor,
	}
}

func defaultOperatorRole() *Role {
	return &Role{
		ID:          DefaultOperatorRoleID,
		Name:        DefaultOperatorRoleName,
		Description: "Platform operator with every permission",
		Permissions: permission.OperatorPermissions(),
		Rank:        DefaultOperatorRoleRank,
		Status:      RoleStatusActive,
		CreatedBy:   SystemActor,
		UpdatedBy:   SystemActor,
	}
}

package domain_test

import (
	"testing"

	"github.com/philly/member-admin/internal/authz/domain"
	"github.com/philly/member-admin/internal/authz/permission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRoles(t *testing.T) {
	roles := domain.DefaultRoles()
	require.Len(t, roles, 2)

	user, operator := roles[0], roles[1]

	assert.Equal(t, "1", user.ID)
	assert.Equal(t, "user", user.Name)
	assert.Equal(t, permission.UserPermissions(), user.Permissions)
	assert.Equal(t, domain.RoleStatusActive, user.Status)
	assert.True(t, user.IsDefault())

	assert.Equal(t, "2", operator.ID)
	assert.Equal(t, "operator", operator.Name)
	assert.Equal(t, permission.IDs(), operator.Permissions)
	assert.True(t, operator.IsDefault())
}

func TestDefaultRoles_FreshCopies(t *testing.T) {
	first := domain.DefaultRoles()
	first[0].Name = "hijacked"
	first[1].Permissions = nil

	second := domain.DefaultRoles()
	assert.Equal(t, "user", second[0].Name)
	assert.NotEmpty(t, second[1].Permissions)
}

func TestDefaultRoleByName(t *testing.T) {
	role, ok := domain.DefaultRoleByName("operator")
	require.True(t, ok)
	assert.Equal(t, domain.DefaultOperatorRoleID, role.ID)

	role, ok = domain.DefaultRoleByName("user")
	require.True(t, ok)
	assert.Equal(t, domain.DefaultUserRoleID, role.ID)

	_, ok = domain.DefaultRoleByName("Operator")
	assert.False(t, ok, "name match is case-sensitive")

	_, ok = domain.DefaultRoleByName("editor")
	assert.False(t, ok)
}

func TestIsDefaultRoleID(t *testing.T) {
	assert.True(t, domain.IsDefaultRoleID("1"))
	assert.True(t, domain.IsDefaultRoleID("2"))
	assert.False(t, domain.IsDefaultRoleID("3"))
	assert.False(t, domain.IsDefaultRoleID(""))
}

func TestIsReservedRoleName(t *testing.T) {
	assert.True(t, domain.IsReservedRoleName("user"))
	assert.True(t, domain.IsReservedRoleName("operator"))
	assert.False(t, domain.IsReservedRoleName("USER"))
	assert.False(t, domain.IsReservedRoleName("editor"))
}

func TestDefaultRoles_AlwaysActive(t *testing.T) {
	for _, role := range domain.DefaultRoles() {
		role.Status = domain.RoleStatusInactive
		assert.True(t, role.IsActive(), "default role %s must stay assignable", role.Name)
	}
}

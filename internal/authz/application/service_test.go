package application_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/philly/member-admin/internal/adapters/memory"
	"github.com/philly/member-admin/internal/authz/application"
	"github.com/philly/member-admin/internal/authz/domain"
	"github.com/philly/member-admin/internal/authz/permission"
	"github.com/philly/member-admin/internal/platform/apperror"
	"github.com/philly/member-admin/internal/platform/eventbus"
	"github.com/philly/member-admin/internal/platform/events"
	"github.com/philly/member-admin/internal/platform/metrics"
	"github.com/philly/member-admin/internal/platform/result"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_DefaultRolesAlwaysFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	viewer := callerWith("viewer", permission.RoleView)

	t.Run("empty store", func(t *testing.T) {
		res := f.svc.List(ctx, viewer)
		require.True(t, res.IsSuccess())

		roles := res.Value()
		require.Len(t, roles, 2)
		assert.Equal(t, "1", roles[0].ID)
		assert.Equal(t, "user", roles[0].Name)
		assert.Equal(t, "2", roles[1].ID)
		assert.Equal(t, "operator", roles[1].Name)
	})

	t.Run("with stored roles", func(t *testing.T) {
		f.createRole(t, "editor", 2, permission.BlogsAdd)
		f.createRole(t, "moderator", 3, permission.BlogsEdit)

		roles := f.svc.List(ctx, viewer).Value()
		require.Len(t, roles, 4)

		names := make([]string, 0, len(roles))
		for _, r := range roles {
			names = append(names, r.Name)
		}
		assert.Equal(t, []string{"user", "operator", "editor", "moderator"}, names)
	})

	// default roles are never written to storage
	for _, stored := range f.storedRoles(t) {
		assert.False(t, domain.IsDefaultRoleID(stored.ID))
	}
}

func TestList_Denied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.svc.List(ctx, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, result.StatusError, res.Status)
	assert.ErrorIs(t, res.Error(), application.ErrUnauthenticated)

	res = f.svc.List(ctx, callerWith("u1", permission.RoleAdd))
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.ErrorIs(t, res.Error(), application.ErrUnauthorized)

	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.GateDecisions().WithLabelValues(application.OpListRoles, metrics.OutcomeUnauthenticated)))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.GateDecisions().WithLabelValues(application.OpListRoles, metrics.OutcomeDenied)))
}

func TestCreate_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := callerWith("admin", permission.RoleAdd, permission.RoleView)

	in := application.CreateRoleInput{
		Name:        "Course Manager",
		Description: "Manages courses",
		Rank:        4,
		Permissions: []string{permission.CourseAdd, permission.CourseEdit},
	}
	res := f.svc.Create(ctx, admin, in)
	require.True(t, res.IsSuccess(), res.Message)
	assert.Equal(t, http.StatusCreated, res.Code)

	got := f.svc.GetByID(ctx, admin, res.Value())
	require.True(t, got.IsSuccess())
	role := got.Value()

	assert.Equal(t, res.Value(), role.ID)
	assert.Equal(t, in.Name, role.Name)
	assert.Equal(t, in.Description, role.Description)
	assert.Equal(t, in.Rank, role.Rank)
	assert.Equal(t, in.Permissions, role.Permissions)
	assert.Equal(t, domain.RoleStatusActive, role.Status)
	assert.Equal(t, "admin", role.CreatedBy)
	assert.Equal(t, "admin", role.UpdatedBy)
	assert.False(t, role.CreatedAt.IsZero())

	assert.Equal(t, []eventbus.Topic{events.RoleCreatedTopic}, f.publisher.topics())
	payload, ok := f.publisher.last().Payload.(events.RoleCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, role.ID, payload.RoleID)
	assert.Equal(t, "admin", payload.ActorID)
}

func TestCreate_SanitizesDescription(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.svc.Create(ctx, operatorCaller("admin"), application.CreateRoleInput{
		Name:        "editor",
		Description: `<script>alert(1)</script>Edits posts`,
	})
	require.True(t, res.IsSuccess())

	role := f.svc.GetByID(ctx, operatorCaller("admin"), res.Value()).Value()
	assert.Equal(t, "Edits posts", role.Description)
}

func TestCreate_NameConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := operatorCaller("admin")

	f.createRole(t, "editor", 1)

	tests := []struct {
		name    string
		role    string
		wantErr error
	}{
		{name: "duplicate custom name", role: "editor", wantErr: application.ErrRoleNameExists},
		{name: "reserved operator", role: "operator", wantErr: application.ErrRoleNameReserved},
		{name: "reserved user", role: "user", wantErr: application.ErrRoleNameReserved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := f.svc.Create(ctx, admin, application.CreateRoleInput{Name: tt.role})
			assert.Equal(t, http.StatusConflict, res.Code)
			assert.ErrorIs(t, res.Error(), tt.wantErr)
		})
	}

	// exactly one stored role named editor and none named operator
	stored := f.storedRoles(t)
	require.Len(t, stored, 1)
	assert.Equal(t, "editor", stored[0].Name)
}

func TestCreate_NameIsCaseSensitive(t *testing.T) {
	f := newFixture(t)
	f.createRole(t, "editor", 1)
	f.createRole(t, "Editor", 1)
	f.createRole(t, "Operator", 1)
	assert.Len(t, f.storedRoles(t), 3)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := operatorCaller("admin")

	res := f.svc.Create(ctx, admin, application.CreateRoleInput{Name: "  "})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.ErrorIs(t, res.Error(), application.ErrInvalidRoleName)

	res = f.svc.Create(ctx, admin, application.CreateRoleInput{
		Name:        "editor",
		Permissions: []string{permission.BlogsAdd, "blogs_teleport"},
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	appErr, ok := apperror.As(res.Error())
	require.True(t, ok)
	assert.Equal(t, apperror.BusinessCodeInvalidPermission, appErr.BusinessCode)
	assert.Equal(t, map[string][]string{"invalid_permissions": {"blogs_teleport"}}, appErr.Details)

	// the shared sentinel is left untouched
	assert.Nil(t, application.ErrInvalidPermission.Details)
	assert.Empty(t, f.storedRoles(t))
}

func TestCreate_RequiresRoleAdd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// holding every other role permission is not enough
	caller := callerWith("u1", permission.RoleView, permission.RoleEdit, permission.RoleDelete)
	res := f.svc.Create(ctx, caller, application.CreateRoleInput{Name: "editor"})

	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Empty(t, f.storedRoles(t))
	assert.Empty(t, f.publisher.topics())
}

func TestUpdate_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createRole(t, "editor", 1, permission.BlogsAdd)
	editor := callerWith("admin-2", permission.RoleEdit, permission.RoleView)

	in := application.UpdateRoleInput{
		Name:        "senior_editor",
		Description: "Publishes posts",
		Rank:        7,
		Permissions: []string{permission.BlogsPublish},
		Status:      "inactive",
	}
	res := f.svc.Update(ctx, editor, id, in)
	require.True(t, res.IsSuccess(), res.Message)
	assert.Equal(t, id, res.Value())

	role := f.svc.GetByID(ctx, editor, id).Value()
	assert.Equal(t, in.Name, role.Name)
	assert.Equal(t, in.Description, role.Description)
	assert.Equal(t, in.Rank, role.Rank)
	assert.Equal(t, in.Permissions, role.Permissions)
	assert.Equal(t, domain.RoleStatusInactive, role.Status)
	assert.Equal(t, "admin", role.CreatedBy)
	assert.Equal(t, "admin-2", role.UpdatedBy)

	payload, ok := f.publisher.last().Payload.(events.RoleUpdatedEvent)
	require.True(t, ok)
	assert.Equal(t, "editor", payload.PreviousName)
	assert.Equal(t, "senior_editor", payload.Name)
}

// Update only checks reserved names, so two custom roles can share a name.
func TestUpdate_AllowsDuplicateCustomName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createRole(t, "editor", 1)
	id := f.createRole(t, "writer", 2)

	res := f.svc.Update(ctx, operatorCaller("admin"), id, application.UpdateRoleInput{
		Name:   "editor",
		Status: "active",
	})
	require.True(t, res.IsSuccess(), res.Message)

	count := 0
	for _, r := range f.storedRoles(t) {
		if r.Name == "editor" {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestUpdate_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createRole(t, "editor", 1)
	admin := operatorCaller("admin")
	valid := application.UpdateRoleInput{Name: "editor", Status: "active"}

	tests := []struct {
		name     string
		id       string
		in       application.UpdateRoleInput
		wantCode int
		wantErr  error
	}{
		{name: "reserved name", id: id, in: application.UpdateRoleInput{Name: "operator", Status: "active"}, wantCode: http.StatusConflict, wantErr: application.ErrRoleNameReserved},
		{name: "bad status", id: id, in: application.UpdateRoleInput{Name: "editor", Status: "archived"}, wantCode: http.StatusBadRequest, wantErr: application.ErrInvalidRoleStatus},
		{name: "empty name", id: id, in: application.UpdateRoleInput{Name: "", Status: "active"}, wantCode: http.StatusBadRequest, wantErr: application.ErrInvalidRoleName},
		{name: "unknown permission", id: id, in: application.UpdateRoleInput{Name: "editor", Status: "active", Permissions: []string{"nope"}}, wantCode: http.StatusBadRequest, wantErr: application.ErrInvalidPermission},
		{name: "missing role", id: "no-such-id", in: valid, wantCode: http.StatusNotFound, wantErr: application.ErrRoleNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := f.svc.Update(ctx, admin, tt.id, tt.in)
			assert.Equal(t, tt.wantCode, res.Code)
			assert.ErrorIs(t, res.Error(), tt.wantErr)
		})
	}

	role, err := f.roles.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "editor", role.Name)
}

func TestDefaultRoleProtection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := operatorCaller("admin")
	f.createRole(t, "editor", 1)
	before := f.storedRoles(t)

	results := map[string]result.Result[string]{
		"update user":         f.svc.Update(ctx, admin, domain.DefaultUserRoleID, application.UpdateRoleInput{Name: "member", Status: "active"}),
		"update operator":     f.svc.Update(ctx, admin, domain.DefaultOperatorRoleID, application.UpdateRoleInput{Name: "root", Status: "active"}),
		"delete operator":     f.svc.Delete(ctx, admin, domain.DefaultOperatorRoleID),
		"delete user":         f.svc.Delete(ctx, admin, domain.DefaultUserRoleID),
		"deactivate user":     f.svc.SetStatus(ctx, admin, domain.DefaultUserRoleID, "inactive"),
		"deactivate operator": f.svc.SetStatus(ctx, admin, domain.DefaultOperatorRoleID, "inactive"),
	}
	for name, res := range results {
		assert.False(t, res.IsSuccess(), name)
		assert.ErrorIs(t, res.Error(), application.ErrDefaultRoleImmutable, name)
	}

	created := f.svc.Create(ctx, admin, application.CreateRoleInput{Name: "operator"})
	assert.False(t, created.IsSuccess())

	assert.Equal(t, before, f.storedRoles(t))

	roles := f.svc.List(ctx, admin).Value()
	assert.Equal(t, "user", roles[0].Name)
	assert.Equal(t, "operator", roles[1].Name)
	assert.Equal(t, domain.RoleStatusActive, roles[0].Status)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createRole(t, "editor", 1)
	deleter := callerWith("admin", permission.RoleDelete)

	res := f.svc.Delete(ctx, callerWith("admin", permission.RoleEdit), id)
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = f.svc.Delete(ctx, deleter, id)
	require.True(t, res.IsSuccess())
	assert.Empty(t, f.storedRoles(t))

	res = f.svc.Delete(ctx, deleter, id)
	assert.Equal(t, http.StatusNotFound, res.Code)

	assert.Equal(t, []eventbus.Topic{events.RoleCreatedTopic, events.RoleDeletedTopic}, f.publisher.topics())
}

func TestDelete_LeavesAssignmentsDangling(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createRole(t, "editor", 1)
	f.addUser(t, "u1", "editor")

	require.True(t, f.svc.Delete(ctx, operatorCaller("admin"), id).IsSuccess())
	assert.Equal(t, []string{"editor"}, f.userRoles(t, "u1"))
}

func TestSetStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createRole(t, "editor", 1)
	editor := callerWith("admin-2", permission.RoleEdit)

	res := f.svc.SetStatus(ctx, editor, id, "inactive")
	require.True(t, res.IsSuccess())

	role, _ := f.roles.FindByID(ctx, id)
	assert.Equal(t, domain.RoleStatusInactive, role.Status)
	assert.Equal(t, "admin-2", role.UpdatedBy)

	res = f.svc.SetStatus(ctx, editor, id, "paused")
	assert.ErrorIs(t, res.Error(), application.ErrInvalidRoleStatus)

	res = f.svc.SetStatus(ctx, editor, "missing", "active")
	assert.ErrorIs(t, res.Error(), application.ErrRoleNotFound)

	res = f.svc.SetStatus(ctx, callerWith("x", permission.RoleView), id, "active")
	assert.ErrorIs(t, res.Error(), application.ErrUnauthorized)

	assert.Equal(t, events.RoleStatusChangedTopic, f.publisher.last().Topic)
}

func TestGetByName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	viewer := callerWith("viewer", permission.RoleView)
	f.createRole(t, "editor", 1)

	res := f.svc.GetByName(ctx, viewer, "editor")
	require.True(t, res.IsSuccess())
	assert.Equal(t, "editor", res.Value().Name)

	res = f.svc.GetByName(ctx, viewer, "operator")
	require.True(t, res.IsSuccess())
	assert.Equal(t, domain.DefaultOperatorRoleID, res.Value().ID)

	res = f.svc.GetByName(ctx, viewer, "ghost")
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestGetByID_DefaultIDsAreNotStored(t *testing.T) {
	f := newFixture(t)
	res := f.svc.GetByID(context.Background(), operatorCaller("admin"), domain.DefaultUserRoleID)
	assert.ErrorIs(t, res.Error(), application.ErrRoleNotFound)
}

func TestStoreFaultsAreHidden(t *testing.T) {
	store := memory.NewStore()
	f := newFixtureWith(t, memory.NewRoleRepository(store), memory.NewUserRepository(store), failingRoleRepo{err: errStoreDown}, nil)
	ctx := context.Background()
	admin := operatorCaller("admin")

	type outcome struct {
		code    int
		message string
		err     error
	}
	outcomeOf := func(code int, message string, err error) outcome {
		return outcome{code: code, message: message, err: err}
	}

	list := f.svc.List(ctx, admin)
	byID := f.svc.GetByID(ctx, admin, "x")
	byName := f.svc.GetByName(ctx, admin, "x")
	created := f.svc.Create(ctx, admin, application.CreateRoleInput{Name: "editor"})
	updated := f.svc.Update(ctx, admin, "x", application.UpdateRoleInput{Name: "editor", Status: "active"})
	deleted := f.svc.Delete(ctx, admin, "x")
	status := f.svc.SetStatus(ctx, admin, "x", "active")
	assigned := f.svc.AssignRoles(ctx, admin, application.AssignRolesInput{UserIDs: []string{"u1"}, RoleNames: []string{"editor"}})

	checks := map[string]outcome{
		"list":        outcomeOf(list.Code, list.Message, list.Error()),
		"get by id":   outcomeOf(byID.Code, byID.Message, byID.Error()),
		"get by name": outcomeOf(byName.Code, byName.Message, byName.Error()),
		"create":      outcomeOf(created.Code, created.Message, created.Error()),
		"update":      outcomeOf(updated.Code, updated.Message, updated.Error()),
		"delete":      outcomeOf(deleted.Code, deleted.Message, deleted.Error()),
		"set status":  outcomeOf(status.Code, status.Message, status.Error()),
		"assign":      outcomeOf(assigned.Code, assigned.Message, assigned.Error()),
	}

	for name, c := range checks {
		assert.Equal(t, http.StatusInternalServerError, c.code, name)
		assert.Equal(t, "internal server error", c.message, name)
		assert.NotContains(t, c.message, "10.0.0.7", name)
		assert.ErrorIs(t, c.err, application.ErrStoreUnavailable, name)
		assert.ErrorIs(t, c.err, errStoreDown, name)
	}
	assert.Empty(t, f.publisher.topics())
}

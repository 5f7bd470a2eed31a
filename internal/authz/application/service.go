package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/philly/member-admin/internal/authz/domain"
	"github.com/philly/member-admin/internal/authz/permission"
	"github.com/philly/member-admin/internal/authz/ports"
	"github.com/philly/member-admin/internal/platform/apperror"
	"github.com/philly/member-admin/internal/platform/eventbus"
	"github.com/philly/member-admin/internal/platform/events"
	"github.com/philly/member-admin/internal/platform/logger"
	"github.com/philly/member-admin/internal/platform/result"
)

// Operation names used for gate metrics and logs
const (
	OpListRoles     = "roles.list"
	OpGetRole       = "roles.get"
	OpCreateRole    = "roles.create"
	OpUpdateRole    = "roles.update"
	OpDeleteRole    = "roles.delete"
	OpSetRoleStatus = "roles.set_status"
	OpAssignRoles   = "users.assign_roles"
)

// CreateRoleInput carries the client-supplied fields of a new role.
type CreateRoleInput struct {
	Name        string
	Description string
	Rank        int
	Permissions []string
}

// UpdateRoleInput carries every editable field; update is a full overwrite.
type UpdateRoleInput struct {
	Name        string
	Description string
	Rank        int
	Permissions []string
	Status      string
}

// RoleService implements the role lifecycle and role propagation.
// Every public method checks its own permission first and returns a
// result envelope instead of an error.
type RoleService struct {
	roles     ports.RoleRepository
	users     ports.UserRoleAppender
	gate      *Gate
	publisher eventbus.Publisher
	sanitizer *bluemonday.Policy
	logger    logger.Logger
	now       func() time.Time
}

// NewRoleService creates a new role service
func NewRoleService(
	roles ports.RoleRepository,
	users ports.UserRoleAppender,
	gate *Gate,
	publisher eventbus.Publisher,
	logger logger.Logger,
) *RoleService {
	return &RoleService{
		roles:     roles,
		users:     users,
		gate:      gate,
		publisher: publisher,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ===== QUERY OPERATIONS =====

// List returns the two default roles followed by every persisted role.
func (s *RoleService) List(ctx context.Context, caller *domain.Caller) result.Result[[]*domain.Role] {
	if err := s.gate.Authorize(ctx, caller, OpListRoles, domain.PolicyAll, permission.RoleView); err != nil {
		return result.FromError[[]*domain.Role](err)
	}

	stored, err := s.roles.FindAll(ctx)
	if err != nil {
		return result.FromError[[]*domain.Role](s.storeError(ctx, "RoleService.List", err))
	}

	roles := append(domain.DefaultRoles(), stored...)
	return result.OK(roles, "roles retrieved")
}

// GetByID looks up a persisted role. Default role ids are never stored.
func (s *RoleService) GetByID(ctx context.Context, caller *domain.Caller, id string) result.Result[*domain.Role] {
	if err := s.gate.Authorize(ctx, caller, OpGetRole, domain.PolicyAll, permission.RoleView); err != nil {
		return result.FromError[*domain.Role](err)
	}

	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return result.FromError[*domain.Role](s.storeError(ctx, "RoleService.GetByID", err))
	}
	if role == nil {
		return result.FromError[*domain.Role](ErrRoleNotFound)
	}

	return result.OK(role, "role retrieved")
}

// GetByName looks up a persisted role first, then the default roles.
func (s *RoleService) GetByName(ctx context.Context, caller *domain.Caller, name string) result.Result[*domain.Role] {
	if err := s.gate.Authorize(ctx, caller, OpGetRole, domain.PolicyAll, permission.RoleView); err != nil {
		return result.FromError[*domain.Role](err)
	}

	role, err := s.roles.FindByName(ctx, name)
	if err != nil {
		return result.FromError[*domain.Role](s.storeError(ctx, "RoleService.GetByName", err))
	}
	if role != nil {
		return result.OK(role, "role retrieved")
	}

	if def, ok := domain.DefaultRoleByName(name); ok {
		return result.OK(def, "role retrieved")
	}

	return result.FromError[*domain.Role](ErrRoleNotFound)
}

// ===== COMMAND OPERATIONS =====

// Create inserts a new active role and returns its id.
func (s *RoleService) Create(ctx context.Context, caller *domain.Caller, in CreateRoleInput) result.Result[string] {
	if err := s.gate.Authorize(ctx, caller, OpCreateRole, domain.PolicyAll, permission.RoleAdd); err != nil {
		return result.FromError[string](err)
	}

	if strings.TrimSpace(in.Name) == "" {
		return result.FromError[string](ErrInvalidRoleName)
	}

	if err := validatePermissions(in.Permissions); err != nil {
		return result.FromError[string](err)
	}

	if domain.IsReservedRoleName(in.Name) {
		return result.FromError[string](ErrRoleNameReserved)
	}

	existing, err := s.roles.FindByName(ctx, in.Name)
	if err != nil {
		return result.FromError[string](s.storeError(ctx, "RoleService.Create", err))
	}
	if existing != nil {
		return result.FromError[string](ErrRoleNameExists)
	}

	role, err := domain.NewRole(in.Name, s.sanitize(in.Description), in.Rank, in.Permissions, caller.UserID, s.now())
	if err != nil {
		return result.FromError[string](apperror.From(ErrInvalidRoleName, err))
	}

	id, err := s.roles.Insert(ctx, role)
	if err != nil {
		return result.FromError[string](s.storeError(ctx, "RoleService.Create", err))
	}

	s.logger.Info(ctx, "role created",
		"role_id", id,
		"name", role.Name,
		"actor_id", caller.UserID,
	)
	s.publisher.Publish(ctx, eventbus.Event{
		Topic: events.RoleCreatedTopic,
		Payload: events.RoleCreatedEvent{
			RoleID:      id,
			ActorID:     caller.UserID,
			Name:        role.Name,
			Rank:        role.Rank,
			Permissions: role.Permissions,
			OccurredAt:  role.CreatedAt,
		},
	})

	return result.Created(id, "role created")
}

// Update fully overwrites a persisted role.
//
// The new name is only checked against the reserved names: two custom roles
// may end up sharing a name after an update, while Create forbids it.
// Users holding the old name keep it.
func (s *RoleService) Update(ctx context.Context, caller *domain.Caller, id string, in UpdateRoleInput) result.Result[string] {
	if err := s.gate.Authorize(ctx, caller, OpUpdateRole, domain.PolicyAll, permission.RoleEdit); err != nil {
		return result.FromError[string](err)
	}

	if domain.IsDefaultRoleID(id) {
		return result.FromError[string](ErrDefaultRoleImmutable)
	}

	status, err := domain.ParseRoleStatus(in.Status)
	if err != nil {
		return result.FromError[string](apperror.From(ErrInvalidRoleStatus, err))
	}

	if strings.TrimSpace(in.Name) == "" {
		return result.FromError[string](ErrInvalidRoleName)
	}

	if err := validatePermissions(in.Permissions); err != nil {
		return result.FromError[string](err)
	}

	if domain.IsReservedRoleName(in.Name) {
		return result.FromError[string](ErrRoleNameReserved)
	}

	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return result.FromError[string](s.storeError(ctx, "RoleService.Update", err))
	}
	if role == nil {
		return result.FromError[string](ErrRoleNotFound)
	}

	previousName := role.Name
	changes := domain.RoleChanges{
		Name:        in.Name,
		Description: s.sanitize(in.Description),
		Rank:        in.Rank,
		Permissions: in.Permissions,
		Status:      status,
	}
	if err := role.Apply(changes, caller.UserID, s.now()); err != nil {
		return result.FromError[string](apperror.From(ErrInvalidRoleName, err))
	}

	if err := s.roles.Update(ctx, role); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return result.FromError[string](ErrRoleNotFound)
		}
		return result.FromError[string](s.storeError(ctx, "RoleService.Update", err))
	}

	if previousName != role.Name {
		s.logger.Warn(ctx, "role renamed, existing assignments keep the old name",
			"role_id", id,
			"old_name", previousName,
			"new_name", role.Name,
		)
	}
	s.logger.Info(ctx, "role updated",
		"role_id", id,
		"name", role.Name,
		"actor_id", caller.UserID,
	)
	s.publisher.Publish(ctx, eventbus.Event{
		Topic: events.RoleUpdatedTopic,
		Payload: events.RoleUpdatedEvent{
			RoleID:       id,
			ActorID:      caller.UserID,
			Name:         role.Name,
			PreviousName: previousName,
			Status:       string(role.Status),
			OccurredAt:   role.UpdatedAt,
		},
	})

	return result.OK(id, "role updated")
}

// Delete removes a persisted role. Users holding its name are left as is.
func (s *RoleService) Delete(ctx context.Context, caller *domain.Caller, id string) result.Result[string] {
	if err := s.gate.Authorize(ctx, caller, OpDeleteRole, domain.PolicyAll, permission.RoleDelete); err != nil {
		return result.FromError[string](err)
	}

	if domain.IsDefaultRoleID(id) {
		return result.FromError[string](ErrDefaultRoleImmutable)
	}

	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return result.FromError[string](s.storeError(ctx, "RoleService.Delete", err))
	}
	if role == nil {
		return result.FromError[string](ErrRoleNotFound)
	}

	if err := s.roles.Delete(ctx, id); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return result.FromError[string](ErrRoleNotFound)
		}
		return result.FromError[string](s.storeError(ctx, "RoleService.Delete", err))
	}

	s.logger.Info(ctx, "role deleted",
		"role_id", id,
		"name", role.Name,
		"actor_id", caller.UserID,
	)
	s.publisher.Publish(ctx, eventbus.Event{
		Topic: events.RoleDeletedTopic,
		Payload: events.RoleDeletedEvent{
			RoleID:     id,
			ActorID:    caller.UserID,
			Name:       role.Name,
			OccurredAt: s.now(),
		},
	})

	return result.OK(id, "role deleted")
}

// SetStatus activates or deactivates a persisted role. Existing assignments
// of a deactivated role are not revoked.
func (s *RoleService) SetStatus(ctx context.Context, caller *domain.Caller, id string, status string) result.Result[string] {
	if err := s.gate.Authorize(ctx, caller, OpSetRoleStatus, domain.PolicyAll, permission.RoleEdit); err != nil {
		return result.FromError[string](err)
	}

	if domain.IsDefaultRoleID(id) {
		return result.FromError[string](ErrDefaultRoleImmutable)
	}

	newStatus, err := domain.ParseRoleStatus(status)
	if err != nil {
		return result.FromError[string](apperror.From(ErrInvalidRoleStatus, err))
	}

	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return result.FromError[string](s.storeError(ctx, "RoleService.SetStatus", err))
	}
	if role == nil {
		return result.FromError[string](ErrRoleNotFound)
	}

	if err := role.SetStatus(newStatus, caller.UserID, s.now()); err != nil {
		return result.FromError[string](apperror.From(ErrInvalidRoleStatus, err))
	}

	if err := s.roles.UpdateStatus(ctx, id, role.Status, role.UpdatedBy, role.UpdatedAt); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return result.FromError[string](ErrRoleNotFound)
		}
		return result.FromError[string](s.storeError(ctx, "RoleService.SetStatus", err))
	}

	s.logger.Info(ctx, "role status changed",
		"role_id", id,
		"status", role.Status,
		"actor_id", caller.UserID,
	)
	s.publisher.Publish(ctx, eventbus.Event{
		Topic: events.RoleStatusChangedTopic,
		Payload: events.RoleStatusChangedEvent{
			RoleID:     id,
			ActorID:    caller.UserID,
			Status:     string(role.Status),
			OccurredAt: role.UpdatedAt,
		},
	})

	return result.OK(id, "role status updated")
}

// ===== HELPER METHODS =====

// storeError logs a store fault and hides it behind ErrStoreUnavailable.
func (s *RoleService) storeError(ctx context.Context, op string, err error) error {
	s.logger.Error(ctx, "role store operation failed",
		"operation", op,
		"error", err,
	)
	return apperror.From(ErrStoreUnavailable, fmt.Errorf("%s: %w", op, err))
}

func (s *RoleService) sanitize(description string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(description))
}

// validatePermissions rejects ids outside the registry, listing them in Details.
func validatePermissions(ids []string) error {
	invalid := permission.Invalid(ids)
	if len(invalid) == 0 {
		return nil
	}
	return apperror.From(ErrInvalidPermission, fmt.Errorf("unknown permissions: %s", strings.Join(invalid, ", "))).
		WithDetails(map[string][]string{"invalid_permissions": invalid})
}

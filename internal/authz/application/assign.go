package application

import (
	"context"
	"slices"
	"strings"

	"github.com/philly/member-admin/internal/authz/domain"
	"github.com/philly/member-admin/internal/authz/permission"
	"github.com/philly/member-admin/internal/platform/apperror"
	"github.com/philly/member-admin/internal/platform/eventbus"
	"github.com/philly/member-admin/internal/platform/events"
	"github.com/philly/member-admin/internal/platform/result"
)

// AssignRolesInput names the users and the roles to append to each of them.
type AssignRolesInput struct {
	UserIDs   []string
	RoleNames []string
}

// AssignRoles appends roleNames, sorted ascending by rank, to the role list
// of every user in userIDs.
//
// Name resolution is all-or-nothing: if any name does not resolve to an
// active stored role or a default role, no user is touched. Names already
// held by a user are appended again.
func (s *RoleService) AssignRoles(ctx context.Context, caller *domain.Caller, in AssignRolesInput) result.Result[bool] {
	if err := s.gate.Authorize(ctx, caller, OpAssignRoles, domain.PolicyAll, permission.UserEditOthers); err != nil {
		return result.FromError[bool](err)
	}

	if slices.Contains(in.UserIDs, caller.UserID) {
		s.logger.Warn(ctx, "self role assignment rejected",
			"user_id", caller.UserID,
			"roles", in.RoleNames,
		)
		return result.FromError[bool](ErrSelfAssignment)
	}

	if len(in.UserIDs) == 0 || len(in.RoleNames) == 0 {
		return result.FromError[bool](ErrEmptyAssignment)
	}

	ranks, invalid, err := s.resolveAssignableRanks(ctx, in.RoleNames)
	if err != nil {
		return result.FromError[bool](s.storeError(ctx, "RoleService.AssignRoles", err))
	}
	if len(invalid) > 0 {
		s.logger.Warn(ctx, "role assignment rejected",
			"actor_id", caller.UserID,
			"invalid_roles", invalid,
		)
		return result.FromError[bool](apperror.From(ErrSomeRolesInvalid, nil).
			WithDetails(map[string][]string{"invalid_roles": invalid}))
	}

	sorted := domain.SortNamesByRank(in.RoleNames, ranks)

	modified, err := s.users.AppendRoles(ctx, in.UserIDs, sorted)
	if err != nil {
		return result.FromError[bool](s.storeError(ctx, "RoleService.AssignRoles", err))
	}

	s.logger.Info(ctx, "roles assigned",
		"actor_id", caller.UserID,
		"user_count", len(in.UserIDs),
		"modified", modified,
		"roles", strings.Join(sorted, ","),
	)
	s.publisher.Publish(ctx, eventbus.Event{
		Topic: events.UserRolesAssignedTopic,
		Payload: events.UserRolesAssignedEvent{
			UserIDs:    in.UserIDs,
			RoleNames:  sorted,
			Modified:   modified,
			ActorID:    caller.UserID,
			OccurredAt: s.now(),
		},
	})

	return result.OK(true, "roles assigned")
}

// resolveAssignableRanks maps every assignable requested name to its rank and
// returns the names that are not assignable, in request order.
//
// Default role names always resolve. When several stored roles share a name,
// the lowest rank among the active ones wins.
func (s *RoleService) resolveAssignableRanks(ctx context.Context, names []string) (map[string]int, []string, error) {
	lookup := make([]string, 0, len(names))
	for _, name := range names {
		if !domain.IsReservedRoleName(name) && !slices.Contains(lookup, name) {
			lookup = append(lookup, name)
		}
	}

	ranks := make(map[string]int, len(names))
	if len(lookup) > 0 {
		stored, err := s.roles.FindByNames(ctx, lookup)
		if err != nil {
			return nil, nil, err
		}
		for _, role := range stored {
			if !role.IsActive() {
				continue
			}
			if rank, seen := ranks[role.Name]; !seen || role.Rank < rank {
				ranks[role.Name] = role.Rank
			}
		}
	}

	var invalid []string
	for _, name := range names {
		if def, ok := domain.DefaultRoleByName(name); ok {
			ranks[name] = def.Rank
			continue
		}
		if _, ok := ranks[name]; !ok && !slices.Contains(invalid, name) {
			invalid = append(invalid, name)
		}
	}

	return ranks, invalid, nil
}

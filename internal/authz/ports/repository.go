package ports

import (
	"context"
	"errors"
	"time"

	"github.com/philly/member-admin/internal/authz/domain"
)

// ErrNotFound is returned by write operations whose target id does not exist.
// Read operations return (nil, nil) instead.
var ErrNotFound = errors.New("record not found")

// RoleRepository persists custom roles. Default roles are never stored and
// never returned by any of these methods.
type RoleRepository interface {
	// ===== QUERIES =====

	// FindAll returns every persisted role in insertion order.
	FindAll(ctx context.Context) ([]*domain.Role, error)

	// FindByID returns (nil, nil) when no role has this id, including ids the
	// store cannot parse.
	FindByID(ctx context.Context, id string) (*domain.Role, error)

	// FindByName performs a case-sensitive exact match.
	FindByName(ctx context.Context, name string) (*domain.Role, error)

	// FindByNames returns all persisted roles whose name is in names,
	// regardless of status.
	FindByNames(ctx context.Context, names []string) ([]*domain.Role, error)

	// ===== COMMANDS =====

	// Insert stores a new role and returns its store-assigned id.
	Insert(ctx context.Context, role *domain.Role) (string, error)

	// Update overwrites name, description, rank, permissions, status and the
	// updated audit fields of the role with role.ID.
	Update(ctx context.Context, role *domain.Role) error

	// UpdateStatus changes only status and the updated audit fields.
	UpdateStatus(ctx context.Context, id string, status domain.RoleStatus, updatedBy string, updatedAt time.Time) error

	// Delete removes the role document.
	Delete(ctx context.Context, id string) error
}

// UserRoleAppender is the slice of the user store that role propagation needs.
type UserRoleAppender interface {
	AppendRoles(ctx context.Context, userIDs []string, roleNames []string) (int64, error)
}

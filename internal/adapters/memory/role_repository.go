package memory

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/philly/member-admin/internal/authz/domain"
	"github.com/philly/member-admin/internal/authz/ports"
)

// RoleRepository implements ports.RoleRepository on a Store.
type RoleRepository struct {
	store *Store
}

var _ ports.RoleRepository = (*RoleRepository)(nil)

// NewRoleRepository creates a role repository on store.
func NewRoleRepository(store *Store) *RoleRepository {
	return &RoleRepository{store: store}
}

func (r *RoleRepository) FindAll(ctx context.Context) ([]*domain.Role, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	roles := make([]*domain.Role, 0, len(r.store.roles))
	for _, role := range r.store.roles {
		roles = append(roles, role.Clone())
	}
	return roles, nil
}

func (r *RoleRepository) FindByID(ctx context.Context, id string) (*domain.Role, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.store.roles[i].Clone(), nil
	}
	return nil, nil
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, role := range r.store.roles {
		if role.Name == name {
			return role.Clone(), nil
		}
	}
	return nil, nil
}

func (r *RoleRepository) FindByNames(ctx context.Context, names []string) ([]*domain.Role, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var roles []*domain.Role
	for _, role := range r.store.roles {
		if slices.Contains(names, role.Name) {
			roles = append(roles, role.Clone())
		}
	}
	return roles, nil
}

func (r *RoleRepository) Insert(ctx context.Context, role *domain.Role) (string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored := role.Clone()
	stored.ID = uuid.NewString()
	r.store.roles = append(r.store.roles, stored)
	return stored.ID, nil
}

func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i := r.indexOf(role.ID)
	if i < 0 {
		return ports.ErrNotFound
	}
	stored := r.store.roles[i]
	stored.Name = role.Name
	stored.Description = role.Description
	stored.Rank = role.Rank
	stored.Permissions = slices.Clone(role.Permissions)
	stored.Status = role.Status
	stored.UpdatedAt = role.UpdatedAt
	stored.UpdatedBy = role.UpdatedBy
	return nil
}

func (r *RoleRepository) UpdateStatus(ctx context.Context, id string, status domain.RoleStatus, updatedBy string, updatedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ports.ErrNotFound
	}
	stored := r.store.roles[i]
	stored.Status = status
	stored.UpdatedBy = updatedBy
	stored.UpdatedAt = updatedAt
	return nil
}

func (r *RoleRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ports.ErrNotFound
	}
	r.store.roles = slices.Delete(r.store.roles, i, i+1)
	return nil
}

// indexOf must be called with the lock held.
func (r *RoleRepository) indexOf(id string) int {
	return slices.IndexFunc(r.store.roles, func(role *domain.Role) bool {
		return role.ID == id
	})
}

package memory

import (
	"context"
	"errors"
	"slices"
	"time"

	authzports "github.com/philly/member-admin/internal/authz/ports"
	"github.com/philly/member-admin/internal/users/domain"
	"github.com/philly/member-admin/internal/users/ports"
)

// ErrUserExists is returned by Create for a duplicate id.
var ErrUserExists = errors.New("user already exists")

// UserRepository implements ports.UserRepository on a Store.
type UserRepository struct {
	store *Store
}

var (
	_ ports.UserRepository        = (*UserRepository)(nil)
	_ authzports.UserRoleAppender = (*UserRepository)(nil)
)

// NewUserRepository creates a user repository on store.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[user.ID]; ok {
		return ErrUserExists
	}
	r.store.users[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if user, ok := r.store.users[id]; ok {
		return cloneUser(user), nil
	}
	return nil, nil
}

func (r *UserRepository) AppendRoles(ctx context.Context, userIDs []string, roleNames []string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now().UTC()
	var modified int64
	seen := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		user, ok := r.store.users[id]
		if !ok {
			continue
		}
		user.AppendRoles(roleNames, now)
		modified++
	}
	return modified, nil
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	c.Roles = slices.Clone(u.Roles)
	if c.Roles == nil {
		c.Roles = []string{}
	}
	return &c
}

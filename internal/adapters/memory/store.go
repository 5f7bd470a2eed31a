// Package memory is a process-local store for development and tests.
package memory

import (
	"context"
	"sync"

	authzdomain "github.com/philly/member-admin/internal/authz/domain"
	userdomain "github.com/philly/member-admin/internal/users/domain"
)

// Store holds roles and users behind one lock. Every value handed in or out
// is copied.
type Store struct {
	mu    sync.RWMutex
	roles []*authzdomain.Role
	users map[string]*userdomain.User
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{users: make(map[string]*userdomain.User)}
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op.
func (s *Store) Close() {}

package ports

import (
	"context"

	"github.com/philly/member-admin/internal/users/domain"
)

// UserRepository is the user side of the store. FindByID returns (nil, nil)
// when the user does not exist.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// AppendRoles appends roleNames, in order, to the role list of every
	// user whose id is in userIDs. Unknown ids are skipped. It returns the
	// number of users modified.
	AppendRoles(ctx context.Context, userIDs []string, roleNames []string) (int64, error)
}

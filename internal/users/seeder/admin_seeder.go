package seeder

import (
	"context"
	"errors"
	"fmt"

	authzdomain "github.com/philly/member-admin/internal/authz/domain"
	"github.com/philly/member-admin/internal/platform/logger"
	"github.com/philly/member-admin/internal/users/application"
)

// AdminAccount describes the first operator account.
type AdminAccount struct {
	ID       string
	Email    string
	Username string
}

// AdminSeeder provisions one user holding the operator role so a fresh
// deployment has somebody able to manage roles.
type AdminSeeder struct {
	users   *application.UserService
	account AdminAccount
	logger  logger.Logger
}

// NewAdminSeeder creates a new admin seeder
func NewAdminSeeder(users *application.UserService, account AdminAccount, logger logger.Logger) *AdminSeeder {
	return &AdminSeeder{
		users:   users,
		account: account,
		logger:  logger,
	}
}

// Name returns the name of this seeder
func (s *AdminSeeder) Name() string {
	return "AdminSeeder"
}

// Seed creates the admin user unless it already exists. An empty account ID
// disables the seeder.
func (s *AdminSeeder) Seed(ctx context.Context) error {
	if s.account.ID == "" {
		s.logger.Info(ctx, "no admin account configured, skipping")
		return nil
	}

	_, err := s.users.CreateUser(ctx, application.CreateUserParams{
		ID:       s.account.ID,
		Email:    s.account.Email,
		Username: s.account.Username,
		Roles:    []string{authzdomain.DefaultOperatorRoleName},
	})
	if errors.Is(err, application.ErrUserAlreadyExists) {
		s.logger.Debug(ctx, "admin already seeded", "user_id", s.account.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create admin %s: %w", s.account.ID, err)
	}
	return nil
}

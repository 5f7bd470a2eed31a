package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/philly/member-admin/internal/authz/domain"
	"github.com/philly/member-admin/internal/authz/permission"
	"github.com/philly/member-admin/internal/authz/ports"
	"github.com/philly/member-admin/internal/platform/logger"
)

// RoleSeeder inserts SampleRoles that are not stored yet. Existing roles
// with the same name are left untouched.
type RoleSeeder struct {
	roles  ports.RoleRepository
	logger logger.Logger
	now    func() time.Time
}

// NewRoleSeeder creates a new role seeder
func NewRoleSeeder(roles ports.RoleRepository, logger logger.Logger) *RoleSeeder {
	return &RoleSeeder{
		roles:  roles,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Name returns the name of this seeder
func (s *RoleSeeder) Name() string {
	return "RoleSeeder"
}

// Seed runs the role seeding logic
func (s *RoleSeeder) Seed(ctx context.Context) error {
	for _, sample := range SampleRoles {
		if invalid := permission.Invalid(sample.Permissions); len(invalid) > 0 {
			return fmt.Errorf("sample role %s: unknown permissions %v", sample.Name, invalid)
		}

		existing, err := s.roles.FindByName(ctx, sample.Name)
		if err != nil {
			return fmt.Errorf("failed to look up role %s: %w", sample.Name, err)
		}
		if existing != nil {
			s.logger.Debug(ctx, "role already seeded", "name", sample.Name, "role_id", existing.ID)
			continue
		}

		role, err := domain.NewRole(sample.Name, sample.Description, sample.Rank, sample.Permissions, domain.SystemActor, s.now())
		if err != nil {
			return fmt.Errorf("failed to build role %s: %w", sample.Name, err)
		}

		id, err := s.roles.Insert(ctx, role)
		if err != nil {
			return fmt.Errorf("failed to insert role %s: %w", sample.Name, err)
		}

		s.logger.Info(ctx, "role seeded", "name", sample.Name, "role_id", id)
	}

	return nil
}

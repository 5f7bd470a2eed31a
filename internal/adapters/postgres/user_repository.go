package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	authzports "github.com/philly/member-admin/internal/authz/ports"
	"github.com/philly/member-admin/internal/platform/postgres"
	"github.com/philly/member-admin/internal/users/domain"
	"github.com/philly/member-admin/internal/users/ports"
)

// UserRepository implements ports.UserRepository using PostgreSQL.
// Role names live in a text[] column on the users row.
type UserRepository struct {
	postgres.BaseRepository
}

var (
	_ ports.UserRepository        = (*UserRepository)(nil)
	_ authzports.UserRoleAppender = (*UserRepository)(nil)
)

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	roles := user.Roles
	if roles == nil {
		roles = []string{}
	}

	query, args, err := r.SB.
		Insert("users").
		Columns("id", "email", "username", "display_name", "roles", "created_at", "updated_at").
		Values(user.ID, user.Email, user.Username, nullString(user.DisplayName), roles, user.CreatedAt, user.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("UserRepository.Create: build query: %w", err)
	}

	if _, err := r.DB.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query, args, err := r.SB.
		Select("id", "email", "username", "display_name", "roles", "created_at", "updated_at").
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("UserRepository.FindByID: build query: %w", err)
	}

	var user domain.User
	var displayName *string

	err = r.DB.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&displayName,
		&user.Roles,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}

	user.DisplayName = stringValue(displayName)
	if user.Roles == nil {
		user.Roles = []string{}
	}

	return &user, nil
}

// AppendRoles concatenates roleNames onto every matching row in one statement.
func (r *UserRepository) AppendRoles(ctx context.Context, userIDs []string, roleNames []string) (int64, error) {
	if len(userIDs) == 0 || len(roleNames) == 0 {
		return 0, nil
	}

	query, args, err := r.SB.
		Update("users").
		Set("roles", sq.Expr("array_cat(roles, ?::text[])", roleNames)).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": userIDs}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("UserRepository.AppendRoles: build query: %w", err)
	}

	tag, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to append roles: %w", err)
	}

	return tag.RowsAffected(), nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/philly/member-admin/internal/authz/domain"
	"github.com/philly/member-admin/internal/authz/ports"
	"github.com/philly/member-admin/internal/platform/postgres"
)

var roleColumns = []string{
	"id", "name", "description", "permissions", "rank", "status",
	"created_at", "updated_at", "created_by", "updated_by",
}

// RoleRepository implements ports.RoleRepository using PostgreSQL
type RoleRepository struct {
	postgres.BaseRepository
}

var _ ports.RoleRepository = (*RoleRepository)(nil)

// NewRoleRepository creates a new PostgreSQL role repository
func NewRoleRepository(db *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

// ===== QUERIES =====

func (r *RoleRepository) FindAll(ctx context.Context) ([]*domain.Role, error) {
	return r.selectMany(ctx, "RoleRepository.FindAll", r.selectRoles())
}

func (r *RoleRepository) FindByID(ctx context.Context, id string) (*domain.Role, error) {
	roleID, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	return r.selectOne(ctx, "RoleRepository.FindByID", r.selectRoles().Where(sq.Eq{"id": roleID}))
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	return r.selectOne(ctx, "RoleRepository.FindByName", r.selectRoles().Where(sq.Eq{"name": name}).Limit(1))
}

func (r *RoleRepository) FindByNames(ctx context.Context, names []string) ([]*domain.Role, error) {
	if len(names) == 0 {
		return []*domain.Role{}, nil
	}
	return r.selectMany(ctx, "RoleRepository.FindByNames", r.selectRoles().Where(sq.Eq{"name": names}))
}

// ===== COMMANDS =====

func (r *RoleRepository) Insert(ctx context.Context, role *domain.Role) (string, error) {
	id := uuid.New()

	query, args, err := r.SB.
		Insert("roles").
		Columns(roleColumns...).
		Values(
			pgtype.UUID{Bytes: id, Valid: true},
			role.Name,
			role.Description,
			permissionsOrEmpty(role.Permissions),
			role.Rank,
			string(role.Status),
			pgtype.Timestamptz{Time: role.CreatedAt, Valid: true},
			pgtype.Timestamptz{Time: role.UpdatedAt, Valid: true},
			role.CreatedBy,
			role.UpdatedBy,
		).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("RoleRepository.Insert: build query: %w", err)
	}

	if _, err := r.DB.Exec(ctx, query, args...); err != nil {
		return "", fmt.Errorf("RoleRepository.Insert: %w", err)
	}

	return id.String(), nil
}

func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) error {
	roleID, ok := parseID(role.ID)
	if !ok {
		return ports.ErrNotFound
	}

	query, args, err := r.SB.
		Update("roles").
		Set("name", role.Name).
		Set("description", role.Description).
		Set("permissions", permissionsOrEmpty(role.Permissions)).
		Set("rank", role.Rank).
		Set("status", string(role.Status)).
		Set("updated_at", pgtype.Timestamptz{Time: role.UpdatedAt, Valid: true}).
		Set("updated_by", role.UpdatedBy).
		Where(sq.Eq{"id": roleID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("RoleRepository.Update: build query: %w", err)
	}

	return r.execOne(ctx, "RoleRepository.Update", query, args)
}

func (r *RoleRepository) UpdateStatus(ctx context.Context, id string, status domain.RoleStatus, updatedBy string, updatedAt time.Time) error {
	roleID, ok := parseID(id)
	if !ok {
		return ports.ErrNotFound
	}

	query, args, err := r.SB.
		Update("roles").
		Set("status", string(status)).
		Set("updated_at", pgtype.Timestamptz{Time: updatedAt, Valid: true}).
		Set("updated_by", updatedBy).
		Where(sq.Eq{"id": roleID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("RoleRepository.UpdateStatus: build query: %w", err)
	}

	return r.execOne(ctx, "RoleRepository.UpdateStatus", query, args)
}

func (r *RoleRepository) Delete(ctx context.Context, id string) error {
	roleID, ok := parseID(id)
	if !ok {
		return ports.ErrNotFound
	}

	query, args, err := r.SB.
		Delete("roles").
		Where(sq.Eq{"id": roleID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("RoleRepository.Delete: build query: %w", err)
	}

	return r.execOne(ctx, "RoleRepository.Delete", query, args)
}

// ===== HELPERS =====

func (r *RoleRepository) selectRoles() sq.SelectBuilder {
	return r.SB.Select(roleColumns...).From("roles").OrderBy("created_at ASC", "id ASC")
}

func (r *RoleRepository) selectOne(ctx context.Context, op string, qb sq.SelectBuilder) (*domain.Role, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	role, err := scanRole(r.DB.QueryRow(ctx, query, args...))
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return role, nil
}

func (r *RoleRepository) selectMany(ctx context.Context, op string, qb sq.SelectBuilder) ([]*domain.Role, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	roles := make([]*domain.Role, 0)
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		roles = append(roles, role)
	}

	return roles, rows.Err()
}

func (r *RoleRepository) execOne(ctx context.Context, op, query string, args []any) error {
	tag, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRole(row rowScanner) (*domain.Role, error) {
	var (
		id          pgtype.UUID
		role        domain.Role
		status      string
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
		permissions []string
	)

	err := row.Scan(
		&id,
		&role.Name,
		&role.Description,
		&permissions,
		&role.Rank,
		&status,
		&createdAt,
		&updatedAt,
		&role.CreatedBy,
		&role.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	role.ID = uuid.UUID(id.Bytes).String()
	role.Status = domain.RoleStatus(status)
	role.Permissions = permissionsOrEmpty(permissions)
	role.CreatedAt = createdAt.Time
	role.UpdatedAt = updatedAt.Time
	return &role, nil
}

// parseID maps ids the store cannot hold to "not found".
func parseID(id string) (pgtype.UUID, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return pgtype.UUID{}, false
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, true
}

func permissionsOrEmpty(p []string) []string {
	if p == nil {
		return []string{}
	}
	return p
}

package postgres

import (
	"context"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/philly/member-admin/internal/platform/postgres"
)

// fakeQuerier records statements and replays canned results.
type fakeQuerier struct {
	execSQL  []string
	execArgs [][]any
	execTag  pgconn.CommandTag
	execErr  error

	rowSQL  string
	rowArgs []any
	row     fakeRow
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	f.execArgs = append(f.execArgs, args)
	return f.execTag, f.execErr
}

func (f *fakeQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("not used")
}

func (f *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.rowSQL = sql
	f.rowArgs = args
	return f.row
}

// fakeRow assigns values positionally into the scan destinations.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

func newRoleRepositoryWithQuerier(db postgres.Querier) *RoleRepository {
	return &RoleRepository{BaseRepository: postgres.NewBaseRepositoryWithQuerier(db)}
}

func newUserRepositoryWithQuerier(db postgres.Querier) *UserRepository {
	return &UserRepository{BaseRepository: postgres.NewBaseRepositoryWithQuerier(db)}
}

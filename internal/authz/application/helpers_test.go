package application_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/philly/member-admin/internal/adapters/memory"
	"github.com/philly/member-admin/internal/authz/application"
	"github.com/philly/member-admin/internal/authz/domain"
	"github.com/philly/member-admin/internal/authz/permission"
	"github.com/philly/member-admin/internal/authz/ports"
	"github.com/philly/member-admin/internal/platform/eventbus"
	"github.com/philly/member-admin/internal/platform/logger"
	"github.com/philly/member-admin/internal/platform/metrics"
	userdomain "github.com/philly/member-admin/internal/users/domain"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("dial tcp 10.0.0.7:27017: connection refused")

type recordingPublisher struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event eventbus.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) topics() []eventbus.Topic {
	p.mu.Lock()
	defer p.mu.Unlock()
	topics := make([]eventbus.Topic, 0, len(p.events))
	for _, e := range p.events {
		topics = append(topics, e.Topic)
	}
	return topics
}

func (p *recordingPublisher) last() eventbus.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

// failingRoleRepo fails every call with err.
type failingRoleRepo struct {
	err error
}

func (f failingRoleRepo) FindAll(context.Context) ([]*domain.Role, error) {
	return nil, f.err
}

func (f failingRoleRepo) FindByID(context.Context, string) (*domain.Role, error) {
	return nil, f.err
}

func (f failingRoleRepo) FindByName(context.Context, string) (*domain.Role, error) {
	return nil, f.err
}

func (f failingRoleRepo) FindByNames(context.Context, []string) ([]*domain.Role, error) {
	return nil, f.err
}

func (f failingRoleRepo) Insert(context.Context, *domain.Role) (string, error) {
	return "", f.err
}

func (f failingRoleRepo) Update(context.Context, *domain.Role) error {
	return f.err
}

func (f failingRoleRepo) UpdateStatus(context.Context, string, domain.RoleStatus, string, time.Time) error {
	return f.err
}

func (f failingRoleRepo) Delete(context.Context, string) error {
	return f.err
}

var _ ports.RoleRepository = failingRoleRepo{}

// failingAppender fails every append with err.
type failingAppender struct {
	err error
}

func (f failingAppender) AppendRoles(context.Context, []string, []string) (int64, error) {
	return 0, f.err
}

type fixture struct {
	svc       *application.RoleService
	gate      *application.Gate
	roles     *memory.RoleRepository
	users     *memory.UserRepository
	publisher *recordingPublisher
	metrics   *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	return newFixtureWith(t, memory.NewRoleRepository(store), memory.NewUserRepository(store), nil, nil)
}

// newFixtureWith builds the service over the given memory repositories,
// optionally replacing the role store or the appender with a fault injector.
func newFixtureWith(t *testing.T, roles *memory.RoleRepository, users *memory.UserRepository, roleRepo ports.RoleRepository, appender ports.UserRoleAppender) *fixture {
	t.Helper()
	if roleRepo == nil {
		roleRepo = roles
	}
	if appender == nil {
		appender = users
	}

	m := metrics.NewMetrics()
	gate := application.NewGate(m, logger.Nop{})
	publisher := &recordingPublisher{}

	return &fixture{
		svc:       application.NewRoleService(roleRepo, appender, gate, publisher, logger.Nop{}),
		gate:      gate,
		roles:     roles,
		users:     users,
		publisher: publisher,
		metrics:   m,
	}
}

func operatorCaller(id string) *domain.Caller {
	return domain.NewCaller(id, domain.PermissionMapFrom(permission.OperatorPermissions()...))
}

func callerWith(id string, perms ...string) *domain.Caller {
	return domain.NewCaller(id, domain.PermissionMapFrom(perms...))
}

func (f *fixture) createRole(t *testing.T, name string, rank int, perms ...string) string {
	t.Helper()
	res := f.svc.Create(context.Background(), operatorCaller("admin"), application.CreateRoleInput{
		Name:        name,
		Description: name + " role",
		Rank:        rank,
		Permissions: perms,
	})
	require.True(t, res.IsSuccess(), "create %s: %s", name, res.Message)
	return res.Value()
}

func (f *fixture) addUser(t *testing.T, id string, roles ...string) {
	t.Helper()
	user, err := userdomain.NewUser(id, id+"@example.com", "member_"+id)
	require.NoError(t, err)
	user.Roles = append(user.Roles, roles...)
	require.NoError(t, f.users.Create(context.Background(), user))
}

func (f *fixture) userRoles(t *testing.T, id string) []string {
	t.Helper()
	user, err := f.users.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, user)
	return user.Roles
}

func (f *fixture) storedRoles(t *testing.T) []*domain.Role {
	t.Helper()
	roles, err := f.roles.FindAll(context.Background())
	require.NoError(t, err)
	return roles
}

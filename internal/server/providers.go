package server

import (
	"github.com/google/wire"
	"github.com/philly/member-admin/internal/adapters/audit"
	"github.com/philly/member-admin/internal/adapters/auth"
	authzapp "github.com/philly/member-admin/internal/authz/application"
	authzseeder "github.com/philly/member-admin/internal/authz/seeder"
	"github.com/philly/member-admin/internal/platform/eventbus"
	"github.com/philly/member-admin/internal/platform/metrics"
	"github.com/philly/member-admin/internal/platform/seeder"
	userseeder "github.com/philly/member-admin/internal/users/seeder"
)

// Version is reported by the readiness probe.
const Version = "1.0.0"

// StoreSet exposes the fields of *Stores to the injector.
var StoreSet = wire.NewSet(
	ConnectStore,
	wire.FieldsOf(new(*Stores), "Roles", "Users", "Appender", "Health"),
)

// MetricsSet binds the metrics collector to the recorder ports.
var MetricsSet = wire.NewSet(
	metrics.ProviderSet,
	wire.Bind(new(authzapp.DecisionRecorder), new(*metrics.Metrics)),
	wire.Bind(new(audit.EventRecorder), new(*metrics.Metrics)),
)

// AuditRegistration marks that the audit subscriber is listening on the bus.
type AuditRegistration struct{}

func registerAudit(bus *eventbus.Bus, subscriber *audit.Subscriber) AuditRegistration {
	subscriber.Register(bus)
	return AuditRegistration{}
}

// provideAuthConfig extracts the token validation settings
func provideAuthConfig(config Config) auth.Config {
	return auth.Config{
		JWKSEndpoint: config.JWKSEndpoint,
		Issuer:       config.JWTIssuer,
	}
}

// provideVersion provides the application version
func provideVersion() string {
	return Version
}

func provideAdminAccount(config Config) userseeder.AdminAccount {
	return userseeder.AdminAccount{
		ID:       config.SeedAdminID,
		Email:    config.SeedAdminEmail,
		Username: config.SeedAdminUsername,
	}
}

// provideSeeders lists the seeders in the order they run: roles first so the
// admin account's role exists when it is created.
func provideSeeders(roles *authzseeder.RoleSeeder, admin *userseeder.AdminSeeder) []seeder.Seeder {
	return []seeder.Seeder{roles, admin}
}

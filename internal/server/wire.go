//go:build wireinject
// +build wireinject

package server

import (
	"context"

	"github.com/google/wire"
	"github.com/philly/member-admin/internal/adapters/audit"
	"github.com/philly/member-admin/internal/adapters/auth"
	"github.com/philly/member-admin/internal/adapters/rest"
	"github.com/philly/member-admin/internal/adapters/rest/middleware"
	authzApp "github.com/philly/member-admin/internal/authz/application"
	authzSeeder "github.com/philly/member-admin/internal/authz/seeder"
	"github.com/philly/member-admin/internal/platform/eventbus"
	"github.com/philly/member-admin/internal/platform/logger"
	"github.com/philly/member-admin/internal/platform/seeder"
	"github.com/philly/member-admin/internal/platform/validator"
	"github.com/philly/member-admin/internal/users/application"
	userSeeder "github.com/philly/member-admin/internal/users/seeder"
)

// InitializeApp creates a fully configured App with all dependencies
func InitializeApp(ctx context.Context) (*App, func(), error) {
	wire.Build(
		// Bootstrap phase
		logger.NewBootstrapLogger,
		LoadConfig,

		// Logger configuration
		provideLoggerConfig,
		logger.ProviderSet,

		// Store selected by STORE_DRIVER
		StoreSet,

		// Platform services
		MetricsSet,
		eventbus.ProviderSet,
		validator.ProviderSet,

		// Application services
		authzApp.ProviderSet,
		application.ProviderSet,

		// Audit subscriber
		audit.ProviderSet,
		registerAudit,

		// REST handlers
		rest.ProviderSet,
		middleware.ProviderSet,
		provideVersion, // Provide version string for HealthHandler

		// Auth middleware
		provideAuthConfig,
		auth.ProviderSet,

		// HTTP Server
		NewRouter,
		NewHTTPServer,

		// App
		NewApp,
	)

	return nil, nil, nil
}

// InitializeSeeder creates the seeder orchestrator on the configured store
func InitializeSeeder(ctx context.Context) (*seeder.Orchestrator, func(), error) {
	wire.Build(
		logger.NewBootstrapLogger,
		LoadSeedConfig,
		provideLoggerConfig,
		logger.ProviderSet,

		StoreSet,
		MetricsSet,

		authzApp.NewGate,
		application.ProviderSet,

		authzSeeder.NewRoleSeeder,
		provideAdminAccount,
		userSeeder.NewAdminSeeder,
		provideSeeders,
		seeder.NewOrchestrator,
	)

	return nil, nil, nil
}

package server

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/philly/member-admin/internal/adapters/memory"
	"github.com/philly/member-admin/internal/adapters/mongo"
	"github.com/philly/member-admin/internal/adapters/postgres"
	"github.com/philly/member-admin/internal/adapters/rest"
	authzports "github.com/philly/member-admin/internal/authz/ports"
	"github.com/philly/member-admin/internal/platform/logger"
	userports "github.com/philly/member-admin/internal/users/ports"
)

// Stores bundles the repositories of one backing store.
type Stores struct {
	Roles    authzports.RoleRepository
	Users    userports.UserRepository
	Appender authzports.UserRoleAppender
	Health   rest.Pinger
}

// ConnectStore opens the store selected by config.StoreDriver and returns it
// with a cleanup function
func ConnectStore(ctx context.Context, config Config, log logger.Logger) (*Stores, func(), error) {
	switch config.StoreDriver {
	case StoreDriverPostgres:
		pool, cleanup, err := ConnectDatabase(ctx, config, log)
		if err != nil {
			return nil, nil, err
		}
		users := postgres.NewUserRepository(pool)
		return &Stores{
			Roles:    postgres.NewRoleRepository(pool),
			Users:    users,
			Appender: users,
			Health:   pool,
		}, cleanup, nil

	case StoreDriverMongo:
		log.Info(ctx, "connecting to mongo", "database", config.MongoDatabase)
		store, err := mongo.Connect(ctx, config.MongoURI, config.MongoDatabase)
		if err != nil {
			log.Error(ctx, "failed to connect to mongo", "error", err)
			return nil, nil, err
		}
		log.Info(ctx, "mongo connection established successfully")

		users := mongo.NewUserRepository(store)
		cleanup := func() {
			log.Info(context.Background(), "closing mongo client")
			store.Close()
		}
		return &Stores{
			Roles:    mongo.NewRoleRepository(store),
			Users:    users,
			Appender: users,
			Health:   store,
		}, cleanup, nil

	case StoreDriverMemory:
		log.Warn(ctx, "using in-memory store, data is lost on exit")
		store := memory.NewStore()
		users := memory.NewUserRepository(store)
		return &Stores{
			Roles:    memory.NewRoleRepository(store),
			Users:    users,
			Appender: users,
			Health:   store,
		}, store.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", config.StoreDriver)
	}
}

// ConnectDatabase creates a new database connection pool and returns it with a cleanup function
func ConnectDatabase(ctx context.Context, config Config, log logger.Logger) (*pgxpool.Pool, func(), error) {
	log.Info(ctx, "connecting to database")

	// Parse config from URL and set pool defaults
	poolConfig, err := pgxpool.ParseConfig(config.DatabaseURL)
	if err != nil {
		log.Error(ctx, "failed to parse database URL", "error", err)
		return nil, nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Configure connection pool settings
	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 5 * time.Minute
	poolConfig.MaxConnIdleTime = 1 * time.Minute

	log.Debug(ctx, "database pool configuration",
		"max_conns", poolConfig.MaxConns,
		"min_conns", poolConfig.MinConns,
		"max_conn_lifetime", poolConfig.MaxConnLifetime,
		"max_conn_idle_time", poolConfig.MaxConnIdleTime,
	)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error(ctx, "failed to create connection pool", "error", err)
		return nil, nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Error(ctx, "failed to ping database", "error", err)
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info(ctx, "database connection established successfully")

	cleanup := func() {
		log.Info(context.Background(), "closing database connection pool")
		pool.Close()
	}

	return pool, cleanup, nil
}

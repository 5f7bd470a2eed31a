package server

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/philly/member-admin/internal/platform/logger"
	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
	StoreDriverMemory   = "memory"
)

type Config struct {
	StoreDriver   string `mapstructure:"STORE_DRIVER"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`
	JWKSEndpoint  string `mapstructure:"JWKS_ENDPOINT"` // Generic JWKS endpoint for JWT validation
	JWTIssuer     string `mapstructure:"JWT_ISSUER"`    // Expected JWT issuer for validation
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	Environment   string `mapstructure:"ENVIRONMENT"`
	LogLevel      string `mapstructure:"LOG_LEVEL"` // Logging level (debug, info, warn, error)
	MetricsPath   string `mapstructure:"METRICS_PATH"`

	// Optional operator account created by cmd/seed
	SeedAdminID       string `mapstructure:"SEED_ADMIN_ID"`
	SeedAdminEmail    string `mapstructure:"SEED_ADMIN_EMAIL"`
	SeedAdminUsername string `mapstructure:"SEED_ADMIN_USERNAME"`
}

var configKeys = []string{
	"STORE_DRIVER", "DATABASE_URL", "MONGO_URI", "MONGO_DATABASE",
	"JWKS_ENDPOINT", "JWT_ISSUER", "SERVER_ADDRESS", "ENVIRONMENT",
	"LOG_LEVEL", "METRICS_PATH",
	"SEED_ADMIN_ID", "SEED_ADMIN_EMAIL", "SEED_ADMIN_USERNAME",
}

// LoadConfig reads and validates the API server configuration
func LoadConfig(bootstrapLogger *logger.BootstrapLogger) (Config, error) {
	return loadConfig(bootstrapLogger, Config.Validate)
}

// LoadSeedConfig is LoadConfig without the JWT settings, which seeding does
// not need.
func LoadSeedConfig(bootstrapLogger *logger.BootstrapLogger) (Config, error) {
	return loadConfig(bootstrapLogger, Config.ValidateStore)
}

func loadConfig(bootstrapLogger *logger.BootstrapLogger, validate func(Config) error) (Config, error) {
	ctx := context.Background()

	// Load .env file if it exists (godotenv will find it automatically)
	// It's okay if the file doesn't exist - we'll use environment variables
	if err := godotenv.Load(); err != nil {
		bootstrapLogger.Info(ctx, "no .env file found, using environment variables only")
	} else {
		bootstrapLogger.Info(ctx, "loaded .env file")
	}

	config, err := readConfig(viper.New())
	if err != nil {
		bootstrapLogger.Error(ctx, "failed to unmarshal configuration", "error", err)
		return Config{}, err
	}

	bootstrapLogger.Info(ctx, "configuration loaded",
		"environment", config.Environment,
		"log_level", config.LogLevel,
		"server_address", config.ServerAddress,
		"store_driver", config.StoreDriver,
	)

	if err := validate(config); err != nil {
		bootstrapLogger.Error(ctx, "configuration validation failed", "error", err)
		return Config{}, err
	}

	bootstrapLogger.Info(ctx, "configuration validated successfully")
	return config, nil
}

// readConfig applies defaults and environment variables to v.
func readConfig(v *viper.Viper) (Config, error) {
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("DATABASE_URL", "postgresql://localhost:5432/memberadmin?sslmode=disable")
	v.SetDefault("MONGO_DATABASE", "memberadmin")
	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("METRICS_PATH", "/metrics")

	// Enable automatic environment variable reading
	// Viper will now see all environment variables, including those loaded by godotenv
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unmarshal only sees keys viper knows about; env-only keys need a bind
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	config.StoreDriver = strings.ToLower(strings.TrimSpace(config.StoreDriver))

	return config, nil
}

// Validate checks the settings needed to serve requests.
func (c Config) Validate() error {
	if c.JWKSEndpoint == "" {
		return errors.New("JWKS_ENDPOINT is required")
	}
	if c.JWTIssuer == "" {
		return errors.New("JWT_ISSUER is required")
	}
	return c.ValidateStore()
}

// ValidateStore checks that the selected driver has what it needs to connect.
func (c Config) ValidateStore() error {
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	case StoreDriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required for the mongo store")
		}
		if c.MongoDatabase == "" {
			return errors.New("MONGO_DATABASE is required for the mongo store")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

// provideLoggerConfig creates logger config from server config
func provideLoggerConfig(config Config) logger.Config {
	return logger.Config{
		Environment: config.Environment,
		LogLevel:    config.LogLevel,
	}
}

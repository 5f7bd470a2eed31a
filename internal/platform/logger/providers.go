package logger

import "github.com/google/wire"

// ProviderSet binds the configured slog adapter as the application Logger.
var ProviderSet = wire.NewSet(
	NewConfiguredLogger,
	wire.Bind(new(Logger), new(*SlogAdapter)),
)

// Config selects output format (by Environment) and minimum level.
type Config struct {
	Environment string
	LogLevel    string
}

// NewConfiguredLogger builds the application logger. An empty level means
// debug in development and info everywhere else.
func NewConfiguredLogger(config Config) *SlogAdapter {
	level := config.LogLevel
	if level == "" {
		level = "info"
		if config.Environment == "development" {
			level = "debug"
		}
	}
	return NewSlogAdapter(config.Environment, level)
}

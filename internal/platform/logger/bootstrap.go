package logger

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

// BootstrapLogger is used during startup, before configuration is loaded.
type BootstrapLogger struct {
	logger *log.Logger
}

// NewBootstrapLogger creates a simple logger for bootstrap phase
func NewBootstrapLogger() *BootstrapLogger {
	return &BootstrapLogger{
		logger: log.New(os.Stdout, "[BOOTSTRAP] ", log.LstdFlags),
	}
}

func (b *BootstrapLogger) Debug(ctx context.Context, msg string, args ...any) {
	b.print("DEBUG", msg, args)
}

func (b *BootstrapLogger) Info(ctx context.Context, msg string, args ...any) {
	b.print("INFO", msg, args)
}

func (b *BootstrapLogger) Warn(ctx context.Context, msg string, args ...any) {
	b.print("WARN", msg, args)
}

func (b *BootstrapLogger) Error(ctx context.Context, msg string, args ...any) {
	b.print("ERROR", msg, args)
}

func (b *BootstrapLogger) print(level, msg string, args []any) {
	var sb strings.Builder
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", args[i], args[i+1])
	}
	if len(args)%2 == 1 {
		fmt.Fprintf(&sb, " !BADKEY=%v", args[len(args)-1])
	}
	b.logger.Printf("%s: %s%s", level, msg, sb.String())
}

var _ Logger = (*BootstrapLogger)(nil)

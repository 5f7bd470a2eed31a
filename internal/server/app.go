package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/philly/member-admin/internal/platform/logger"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	server *http.Server
	config Config
	logger logger.Logger
}

// NewApp creates the application. The audit registration is taken only so
// that wire subscribes it to the bus before the server starts.
func NewApp(server *http.Server, config Config, logger logger.Logger, _ AuditRegistration) *App {
	return &App{
		server: server,
		config: config,
		logger: logger,
	}
}

// Run starts the application and handles graceful shutdown
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.serve(ctx)
}

func (a *App) serve(ctx context.Context) error {
	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info(ctx, "starting server",
			"address", a.server.Addr,
			"environment", a.config.Environment,
			"store_driver", a.config.StoreDriver,
		)
		serverErrors <- a.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		a.logger.Info(context.Background(), "shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to gracefully shutdown server: %w", err)
		}
	}

	a.logger.Info(context.Background(), "server stopped")
	return nil
}

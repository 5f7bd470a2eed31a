package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/philly/member-admin/internal/adapters/auth"
	"github.com/philly/member-admin/internal/adapters/rest"
	"github.com/philly/member-admin/internal/adapters/rest/middleware"
	"github.com/philly/member-admin/internal/platform/logger"
	"github.com/philly/member-admin/internal/platform/metrics"
)

// APIBasePath is where the REST surface is mounted.
const APIBasePath = "/api/v1"

// NewRouter builds the root handler: shared middleware, the metrics endpoint
// and the REST routes behind JWT authentication.
func NewRouter(
	config Config,
	server *rest.Server,
	jwtMiddleware *auth.JWTMiddleware,
	m *metrics.Metrics,
	log logger.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log))
	r.Use(chimw.Recoverer)
	r.Use(m.Middleware)

	r.Method(http.MethodGet, config.MetricsPath, m.Handler())
	r.Mount(APIBasePath, server.Routes(jwtMiddleware.Middleware))

	return r
}

// NewHTTPServer wraps the router in an http.Server with conservative timeouts
func NewHTTPServer(config Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              config.ServerAddress,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

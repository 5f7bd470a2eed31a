package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/philly/member-admin/internal/adapters/rest/middleware"
	"github.com/philly/member-admin/internal/authz/domain"
	"github.com/philly/member-admin/internal/authz/permission"
)

// Server combines all handlers behind one router
type Server struct {
	*RoleHandler
	*UserHandler
	*AuthzHandler
	*HealthHandler
	authorizer *middleware.Authorizer
}

// NewServer creates a new server from its handlers
func NewServer(
	roleHandler *RoleHandler,
	userHandler *UserHandler,
	authzHandler *AuthzHandler,
	healthHandler *HealthHandler,
	authorizer *middleware.Authorizer,
) *Server {
	return &Server{
		RoleHandler:   roleHandler,
		UserHandler:   userHandler,
		AuthzHandler:  authzHandler,
		HealthHandler: healthHandler,
		authorizer:    authorizer,
	}
}

// Routes builds the /api/v1 router. Health probes are public; every other
// route runs authenticate first and then its route-level gate. Services
// repeat their own checks, so a route gate only ever narrows access.
func (s *Server) Routes(authenticate func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/health/live", s.GetLiveness)
	r.Get("/health/ready", s.GetReadiness)

	r.Group(func(r chi.Router) {
		r.Use(authenticate)

		require := func(operation string, permissions ...string) func(http.Handler) http.Handler {
			return s.authorizer.Require(operation, domain.PolicyAll, permissions...)
		}

		r.With(require("route.permissions.list", permission.PermissionView)).Get("/permissions", s.ListPermissions)
		r.With(s.authorizer.RequireCaller).Post("/authz/check", s.CheckPermissions)

		r.Route("/roles", func(r chi.Router) {
			r.With(require("route.roles.list", permission.RoleView)).Get("/", s.ListRoles)
			r.With(require("route.roles.create", permission.RoleAdd)).Post("/", s.CreateRole)
			r.With(require("route.roles.get_by_name", permission.RoleView)).Get("/name/{name}", s.GetRoleByName)
			r.With(require("route.roles.get", permission.RoleView)).Get("/{id}", s.GetRole)
			r.With(require("route.roles.update", permission.RoleEdit)).Put("/{id}", s.UpdateRole)
			r.With(require("route.roles.set_status", permission.RoleEdit)).Patch("/{id}/status", s.SetRoleStatus)
			r.With(require("route.roles.delete", permission.RoleDelete)).Delete("/{id}", s.DeleteRole)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(require("route.users.assign_roles", permission.UserEditOthers)).Post("/roles", s.AssignRoles)
			r.With(s.authorizer.RequireCaller).Get("/{id}", s.GetUser)
		})
	})

	return r
}

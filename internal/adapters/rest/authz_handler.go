package rest

import (
	"fmt"
	"net/http"

	"github.com/philly/member-admin/internal/adapters/auth"
	"github.com/philly/member-admin/internal/authz/application"
	"github.com/philly/member-admin/internal/authz/domain"
	"github.com/philly/member-admin/internal/authz/permission"
	"github.com/philly/member-admin/internal/platform/apperror"
	"github.com/philly/member-admin/internal/platform/result"
)

// AuthzHandler serves the permission catalog and the gate check
type AuthzHandler struct {
	*BaseHandler
	gate *application.Gate
}

// NewAuthzHandler creates a new authorization handler
func NewAuthzHandler(base *BaseHandler, gate *application.Gate) *AuthzHandler {
	return &AuthzHandler{
		BaseHandler: base,
		gate:        gate,
	}
}

// ListPermissions returns the registry in canonical order, the same IDs
// grouped by subject, and both default bundles. The route is guarded by permission_view.
func (h *AuthzHandler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	all := permission.All()
	subjects := permission.Subjects()

	catalog := permissionCatalogResponse{
		Permissions: make([]permissionResponse, len(all)),
		Subjects:    make([]subjectGroupResponse, len(subjects)),
		Bundles: map[string][]string{
			domain.DefaultOperatorRoleName: permission.OperatorPermissions(),
			domain.DefaultUserRoleName:     permission.UserPermissions(),
		},
	}
	for i, p := range all {
		catalog.Permissions[i] = mapPermission(p)
	}
	for i, subject := range subjects {
		catalog.Subjects[i] = mapSubjectGroup(subject)
	}

	writeResult(h.BaseHandler, w, r, result.OK(catalog, "permissions retrieved"))
}

// CheckPermissions runs the gate for the current caller. A denial is a
// successful answer with satisfied=false.
func (h *AuthzHandler) CheckPermissions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req checkRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.WriteError(w, r, err)
		return
	}

	policy := domain.PolicyAll
	if req.Policy != "" {
		parsed, err := domain.ParsePolicy(req.Policy)
		if err != nil {
			h.WriteError(w, r, apperror.Wrap(err, apperror.CodeValidationFailed, apperror.BusinessCodeInvalidFormat,
				fmt.Sprintf("policy must be one of: %s, %s", domain.PolicyAny, domain.PolicyAll), http.StatusBadRequest))
			return
		}
		policy = parsed
	}

	res := h.gate.Check(ctx, auth.CallerFrom(ctx), req.Required, policy)
	writeResult(h.BaseHandler, w, r, result.Map(res, mapCheck))
}

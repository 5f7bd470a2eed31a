package rest

import (
	"net/http"

	"github.com/philly/member-admin/internal/adapters/auth"
	"github.com/philly/member-admin/internal/authz/application"
	"github.com/philly/member-admin/internal/platform/result"
)

// RoleHandler handles role lifecycle and role assignment endpoints.
// Authorization happens inside RoleService.
type RoleHandler struct {
	*BaseHandler
	service *application.RoleService
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(base *BaseHandler, service *application.RoleService) *RoleHandler {
	return &RoleHandler{
		BaseHandler: base,
		service:     service,
	}
}

// ListRoles returns the default roles followed by every stored role
func (h *RoleHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res := h.service.List(ctx, auth.CallerFrom(ctx))
	writeResult(h.BaseHandler, w, r, result.Map(res, mapRoles))
}

// GetRole returns a stored role by ID
func (h *RoleHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathParam(r, "id")
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	res := h.service.GetByID(ctx, auth.CallerFrom(ctx), id)
	writeResult(h.BaseHandler, w, r, result.Map(res, mapRole))
}

// GetRoleByName returns a role by exact, case-sensitive name
func (h *RoleHandler) GetRoleByName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name, err := pathParam(r, "name")
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	res := h.service.GetByName(ctx, auth.CallerFrom(ctx), name)
	writeResult(h.BaseHandler, w, r, result.Map(res, mapRole))
}

// CreateRole creates a custom role and returns its ID
func (h *RoleHandler) CreateRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createRoleRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.WriteError(w, r, err)
		return
	}

	res := h.service.Create(ctx, auth.CallerFrom(ctx), application.CreateRoleInput{
		Name:        req.Name,
		Description: req.Description,
		Rank:        req.Rank,
		Permissions: req.Permissions,
	})
	writeResult(h.BaseHandler, w, r, res)
}

// UpdateRole overwrites every editable field of a custom role
func (h *RoleHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathParam(r, "id")
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	var req updateRoleRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.WriteError(w, r, err)
		return
	}

	res := h.service.Update(ctx, auth.CallerFrom(ctx), id, application.UpdateRoleInput{
		Name:        req.Name,
		Description: req.Description,
		Rank:        req.Rank,
		Permissions: req.Permissions,
		Status:      req.Status,
	})
	writeResult(h.BaseHandler, w, r, res)
}

// SetRoleStatus activates or deactivates a custom role
func (h *RoleHandler) SetRoleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathParam(r, "id")
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	var req setStatusRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.WriteError(w, r, err)
		return
	}

	res := h.service.SetStatus(ctx, auth.CallerFrom(ctx), id, req.Status)
	writeResult(h.BaseHandler, w, r, res)
}

// DeleteRole removes a custom role
func (h *RoleHandler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathParam(r, "id")
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	res := h.service.Delete(ctx, auth.CallerFrom(ctx), id)
	writeResult(h.BaseHandler, w, r, res)
}

// AssignRoles appends roles to many users in rank order
func (h *RoleHandler) AssignRoles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req assignRolesRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.WriteError(w, r, err)
		return
	}

	res := h.service.AssignRoles(ctx, auth.CallerFrom(ctx), application.AssignRolesInput{
		UserIDs:   req.UserIDs,
		RoleNames: req.RoleNames,
	})
	writeResult(h.BaseHandler, w, r, res)
}

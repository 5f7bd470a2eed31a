package rest

import (
	"net/http"

	"github.com/philly/member-admin/internal/adapters/auth"
	"github.com/philly/member-admin/internal/platform/result"
	"github.com/philly/member-admin/internal/users/application"
)

type UserHandler struct {
	*BaseHandler
	service *application.UserService
}

func NewUserHandler(base *BaseHandler, service *application.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetUser returns a user with its assigned role names
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathParam(r, "id")
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	res := h.service.GetUser(ctx, auth.CallerFrom(ctx), id)
	writeResult(h.BaseHandler, w, r, result.Map(res, mapUser))
}

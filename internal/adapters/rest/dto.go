package rest

import (
	"time"

	"github.com/philly/member-admin/internal/authz/domain"
	"github.com/philly/member-admin/internal/authz/permission"
	userdomain "github.com/philly/member-admin/internal/users/domain"
)

type createRoleRequest struct {
	Name        string   `json:"name" validate:"required,role_name"`
	Description string   `json:"description" validate:"max=500"`
	Rank        int      `json:"rank" validate:"min=0"`
	Permissions []string `json:"permissions" validate:"dive,permission"`
}

type updateRoleRequest struct {
	Name        string   `json:"name" validate:"required,role_name"`
	Description string   `json:"description" validate:"max=500"`
	Rank        int      `json:"rank" validate:"min=0"`
	Permissions []string `json:"permissions" validate:"dive,permission"`
	Status      string   `json:"status" validate:"required,oneof=active inactive"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

type assignRolesRequest struct {
	UserIDs   []string `json:"user_ids" validate:"required,min=1,dive,required"`
	RoleNames []string `json:"role_names" validate:"required,min=1,dive,required"`
}

type checkRequest struct {
	Required []string `json:"required"`
	Policy   string   `json:"policy"`
}

type roleResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Permissions []string  `json:"permissions"`
	Rank        int       `json:"rank"`
	Status      string    `json:"status"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CreatedBy   string    `json:"created_by"`
	UpdatedBy   string    `json:"updated_by"`
}

type userResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	DisplayName *string   `json:"display_name,omitempty"`
	Roles       []string  `json:"roles"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type permissionResponse struct {
	ID          string `json:"id"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

type subjectGroupResponse struct {
	Subject     string   `json:"subject"`
	Permissions []string `json:"permissions"`
}

type permissionCatalogResponse struct {
	Permissions []permissionResponse   `json:"permissions"`
	Subjects    []subjectGroupResponse `json:"subjects"`
	Bundles     map[string][]string    `json:"bundles"`
}

type checkResponse struct {
	Matched   []string `json:"matched"`
	Satisfied bool     `json:"satisfied"`
}

type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Checks    map[string]string `json:"checks,omitempty"`
}

func mapRole(role *domain.Role) roleResponse {
	permissions := role.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	return roleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		Permissions: permissions,
		Rank:        role.Rank,
		Status:      string(role.Status),
		IsDefault:   role.IsDefault(),
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
		CreatedBy:   role.CreatedBy,
		UpdatedBy:   role.UpdatedBy,
	}
}

func mapRoles(roles []*domain.Role) []roleResponse {
	out := make([]roleResponse, len(roles))
	for i, role := range roles {
		out[i] = mapRole(role)
	}
	return out
}

func mapUser(user *userdomain.User) userResponse {
	roles := user.Roles
	if roles == nil {
		roles = []string{}
	}
	return userResponse{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		DisplayName: stringToPointer(user.DisplayName),
		Roles:       roles,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

func mapPermission(p permission.Permission) permissionResponse {
	return permissionResponse{
		ID:          p.ID,
		Subject:     string(p.Subject),
		Description: p.Description,
	}
}

func mapSubjectGroup(subject permission.Subject) subjectGroupResponse {
	perms := permission.BySubject(subject)
	ids := make([]string, len(perms))
	for i, p := range perms {
		ids[i] = p.ID
	}
	return subjectGroupResponse{Subject: string(subject), Permissions: ids}
}

func mapCheck(c domain.CheckResult) checkResponse {
	return checkResponse{Matched: c.Matched, Satisfied: c.Satisfied}
}

// Helper function to convert string to *string
func stringToPointer(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

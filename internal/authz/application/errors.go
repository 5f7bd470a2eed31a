package application

import (
	"net/http"

	"github.com/philly/member-admin/internal/platform/apperror"
	"github.com/philly/member-admin/internal/platform/result"
)

// Error definitions for service operations using AppError
var (
	ErrUnauthenticated = apperror.New(
		apperror.CodeUnauthenticated,
		apperror.BusinessCodeAuthenticationRequired,
		"authentication required",
		http.StatusUnauthorized,
	)
	ErrUnauthorized = apperror.New(
		apperror.CodeUnauthorized,
		apperror.BusinessCodePermissionDenied,
		"insufficient permissions",
		http.StatusForbidden,
	)
	ErrRoleNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodeRoleNotFound,
		"role not found",
		http.StatusNotFound,
	)
	ErrRoleNameExists = apperror.New(
		apperror.CodeConflict,
		apperror.BusinessCodeRoleNameExists,
		"role name already exists",
		http.StatusConflict,
	)
	ErrRoleNameReserved = apperror.New(
		apperror.CodeConflict,
		apperror.BusinessCodeRoleNameReserved,
		"role name is reserved",
		http.StatusConflict,
	)
	ErrDefaultRoleImmutable = apperror.New(
		apperror.CodeConflict,
		apperror.BusinessCodeDefaultRoleImmutable,
		"default roles cannot be modified",
		http.StatusConflict,
	)
	ErrInvalidRoleName = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidFormat,
		"role name cannot be empty",
		http.StatusBadRequest,
	)
	ErrInvalidRoleStatus = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidRoleStatus,
		"role status must be active or inactive",
		http.StatusBadRequest,
	)
	ErrInvalidPermission = apperror.New(
		apperror.CodeBadRequest,
		apperror.BusinessCodeInvalidPermission,
		"invalid permission",
		http.StatusBadRequest,
	)
	ErrSomeRolesInvalid = apperror.New(
		apperror.CodeBadRequest,
		apperror.BusinessCodeSomeRolesInvalid,
		"some roles are invalid or inactive",
		http.StatusBadRequest,
	)
	ErrSelfAssignment = apperror.New(
		apperror.CodeForbidden,
		apperror.BusinessCodeSelfAssignment,
		"cannot assign roles to yourself",
		http.StatusForbidden,
	)
	ErrEmptyAssignment = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidFormat,
		"at least one user and one role are required",
		http.StatusBadRequest,
	)
	ErrEmptyRequirement = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidFormat,
		"at least one permission is required",
		http.StatusBadRequest,
	)
	ErrStoreUnavailable = apperror.New(
		apperror.CodeInternalError,
		apperror.BusinessCodeStoreUnavailable,
		result.InternalErrorMessage,
		http.StatusInternalServerError,
	)
)

package apperror

// ErrorCode is the general, transport-agnostic error category.
type ErrorCode string

const (
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeUnauthenticated  ErrorCode = "UNAUTHENTICATED"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeInternalError    ErrorCode = "INTERNAL_ERROR"
)

// BusinessCode is the specific reason behind an error.
type BusinessCode string

const (
	BusinessCodeGeneral BusinessCode = "GENERAL"

	// Authentication / authorization
	BusinessCodeAuthenticationRequired BusinessCode = "AUTHENTICATION_REQUIRED"
	BusinessCodePermissionDenied       BusinessCode = "PERMISSION_DENIED"
	BusinessCodeSelfAssignment         BusinessCode = "SELF_ASSIGNMENT"

	// Roles
	BusinessCodeRoleNotFound         BusinessCode = "ROLE_NOT_FOUND"
	BusinessCodeRoleNameExists       BusinessCode = "ROLE_NAME_EXISTS"
	BusinessCodeRoleNameReserved     BusinessCode = "ROLE_NAME_RESERVED"
	BusinessCodeDefaultRoleImmutable BusinessCode = "DEFAULT_ROLE_IMMUTABLE"
	BusinessCodeInvalidRoleStatus    BusinessCode = "INVALID_ROLE_STATUS"
	BusinessCodeSomeRolesInvalid     BusinessCode = "SOME_ROLES_INVALID"

	// Permissions
	BusinessCodeInvalidPermission BusinessCode = "INVALID_PERMISSION"

	// Users
	BusinessCodeUserNotFound BusinessCode = "USER_NOT_FOUND"

	// Input
	BusinessCodeInvalidFormat BusinessCode = "INVALID_FORMAT"

	// Infrastructure
	BusinessCodeStoreUnavailable BusinessCode = "STORE_UNAVAILABLE"
)

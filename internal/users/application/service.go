package application

import (
	"context"
	"fmt"
	"net/http"

	authzapp "github.com/philly/member-admin/internal/authz/application"
	authzdomain "github.com/philly/member-admin/internal/authz/domain"
	"github.com/philly/member-admin/internal/authz/permission"
	"github.com/philly/member-admin/internal/platform/apperror"
	"github.com/philly/member-admin/internal/platform/logger"
	"github.com/philly/member-admin/internal/platform/result"
	"github.com/philly/member-admin/internal/users/domain"
	"github.com/philly/member-admin/internal/users/ports"
)

// OpGetUser is the gate operation name for user lookups.
const OpGetUser = "users.get"

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodeUserNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrUserAlreadyExists = apperror.New(
		apperror.CodeConflict,
		apperror.BusinessCodeGeneral,
		"user already exists",
		http.StatusConflict,
	)
	ErrValidationFailed = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidFormat,
		"validation failed",
		http.StatusBadRequest,
	)
)

// CreateUserParams contains all parameters needed to create a new user
type CreateUserParams struct {
	ID          string
	Email       string
	Username    string
	DisplayName string
	Roles       []string
}

type UserService struct {
	repo   ports.UserRepository
	gate   *authzapp.Gate
	logger logger.Logger
}

func NewUserService(repo ports.UserRepository, gate *authzapp.Gate, logger logger.Logger) *UserService {
	return &UserService{
		repo:   repo,
		gate:   gate,
		logger: logger,
	}
}

// GetUser returns a user with its role names. Callers may read themselves
// with user_view; anyone else needs user_view_others.
func (s *UserService) GetUser(ctx context.Context, caller *authzdomain.Caller, id string) result.Result[*domain.User] {
	required := permission.UserViewOthers
	if caller != nil && caller.UserID == id {
		required = permission.UserView
	}
	if err := s.gate.Authorize(ctx, caller, OpGetUser, authzdomain.PolicyAll, required); err != nil {
		return result.FromError[*domain.User](err)
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error(ctx, "failed to find user",
			"user_id", id,
			"error", err,
		)
		return result.FromError[*domain.User](fmt.Errorf("UserService.GetUser: %w", err))
	}
	if user == nil {
		return result.FromError[*domain.User](ErrUserNotFound)
	}

	return result.OK(user, "user retrieved")
}

// CreateUser stores a user record. It is used by provisioning and seeding,
// which run outside any request and therefore skip the gate.
func (s *UserService) CreateUser(ctx context.Context, params CreateUserParams) (*domain.User, error) {
	user, err := domain.NewUser(params.ID, params.Email, params.Username)
	if err != nil {
		return nil, apperror.From(ErrValidationFailed, err)
	}
	user.DisplayName = params.DisplayName
	user.Roles = append(user.Roles, params.Roles...)

	existing, err := s.repo.FindByID(ctx, params.ID)
	if err != nil {
		return nil, fmt.Errorf("UserService.CreateUser: %w", err)
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("UserService.CreateUser: %w", err)
	}

	s.logger.Info(ctx, "user created", "user_id", user.ID, "roles", user.Roles)
	return user, nil
}

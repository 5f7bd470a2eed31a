// Package validator wraps go-playground/validator with the tags used by
// request payloads: "permission" (a registry identifier) and "role_name".
package validator

import (
	"errors"
	"fmt"
	"net/http"

	playground "github.com/go-playground/validator/v10"
	"github.com/philly/member-admin/internal/authz/permission"
	"github.com/philly/member-admin/internal/platform/apperror"
)

// FieldError describes one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Validator validates structs carrying `validate` tags.
type Validator struct {
	validate *playground.Validate
}

// New builds a Validator with the custom tags registered.
func New() *Validator {
	v := playground.New(playground.WithRequiredStructEnabled())

	_ = v.RegisterValidation("permission", func(fl playground.FieldLevel) bool {
		return permission.IsValid(fl.Field().String())
	})
	_ = v.RegisterValidation("role_name", func(fl playground.FieldLevel) bool {
		return ValidateRoleNameFormat(fl.Field().String(), MaxRoleNameLength) == nil
	})

	return &Validator{validate: v}
}

// Struct validates s. Validation failures come back as a 400 AppError whose
// Details hold one FieldError per invalid field.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs playground.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apperror.Wrap(err, apperror.CodeBadRequest, apperror.BusinessCodeInvalidFormat,
			"invalid request payload", http.StatusBadRequest)
	}

	fields := make([]FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, FieldError{
			Field:   fe.Namespace(),
			Tag:     fe.Tag(),
			Message: messageFor(fe),
		})
	}

	return apperror.Wrap(err, apperror.CodeValidationFailed, apperror.BusinessCodeInvalidFormat,
		"request validation failed", http.StatusBadRequest).WithDetails(fields)
}

func messageFor(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "permission":
		return fmt.Sprintf("%q is not a known permission", fe.Value())
	case "role_name":
		if err := ValidateRoleNameFormat(fmt.Sprint(fe.Value()), MaxRoleNameLength); err != nil {
			return err.Error()
		}
		return ErrInvalidRoleNameFormat.Error()
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s item(s)", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

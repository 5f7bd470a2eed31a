package validator

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxRoleNameLength bounds role names, in characters, in every store.
const MaxRoleNameLength = 64

// Role name validation errors
var (
	ErrRoleNameEmpty         = errors.New("role name cannot be empty")
	ErrRoleNameTooLong       = errors.New("role name is too long")
	ErrInvalidRoleNameFormat = errors.New("role name must be valid UTF-8 without control characters")
)

// ValidateRoleNameFormat checks that name is usable as a role name. It never
// rewrites the name: case, punctuation and surrounding spaces are part of it,
// so "Editor", "editor" and "editor-" are three different roles.
func ValidateRoleNameFormat(name string, maxLength int) error {
	if strings.TrimSpace(name) == "" {
		return ErrRoleNameEmpty
	}

	if !utf8.ValidString(name) {
		return ErrInvalidRoleNameFormat
	}

	if utf8.RuneCountInString(name) > maxLength {
		return ErrRoleNameTooLong
	}

	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return ErrInvalidRoleNameFormat
	}

	return nil
}

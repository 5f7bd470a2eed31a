package domain

import (
	"errors"
	"regexp"
	"time"
)

var (
	ErrInvalidUsername  = errors.New("invalid username format")
	ErrUsernameTooShort = errors.New("username must be at least 3 characters")
	ErrUsernameTooLong  = errors.New("username must not exceed 30 characters")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyUserID      = errors.New("user ID cannot be empty")
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// User is a member record. Roles holds role names, not role ids, in the
// order they were appended. A renamed or deleted role stays in the list.
type User struct {
	ID          string
	Email       string
	Username    string
	DisplayName string
	Roles       []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewUser builds a user whose id comes from the identity provider.
func NewUser(id, email, username string) (*User, error) {
	if id == "" {
		return nil, ErrEmptyUserID
	}

	if err := validateEmail(email); err != nil {
		return nil, err
	}

	if err := validateUsername(username); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &User{
		ID:        id,
		Email:     email,
		Username:  username,
		Roles:     []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// AppendRoles adds names to the end of the role list. Duplicates are kept.
func (u *User) AppendRoles(names []string, now time.Time) {
	u.Roles = append(u.Roles, names...)
	u.UpdatedAt = now
}

func validateEmail(email string) error {
	if email == "" || !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func validateUsername(username string) error {
	if len(username) < 3 {
		return ErrUsernameTooShort
	}
	if len(username) > 30 {
		return ErrUsernameTooLong
	}
	if !usernameRegex.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

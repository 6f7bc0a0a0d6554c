package identity

import (
	"regexp"
	"strings"

	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// User is a local projection of an account owned by the external
// identity provider. The provider issues the ID; this service never
// creates or authenticates users, it only mirrors them so that group
// membership can reference and display them.
type User struct {
	shared.BaseEntity
	Username string
	Email    string
}

// Fallback display names for ledger rendering when a referenced user
// no longer exists locally
const (
	UnknownUserName = "Unknown"
	SystemUserName  = "System"
)

// NewUser creates a user projection from provider-issued identity data
func NewUser(id uuid.UUID, username, email string) (*User, error) {
	if id == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	base := shared.NewBaseEntity()
	base.ID = id
	return &User{
		BaseEntity: base,
		Username:   strings.TrimSpace(username),
		Email:      strings.ToLower(strings.TrimSpace(email)),
	}, nil
}

// SetUsername updates the mirrored username
func (u *User) SetUsername(username string) error {
	if err := validateUsername(username); err != nil {
		return err
	}
	u.Username = strings.TrimSpace(username)
	u.Touch()
	return nil
}

// SetEmail updates the mirrored email
func (u *User) SetEmail(email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	u.Email = strings.ToLower(strings.TrimSpace(email))
	u.Touch()
	return nil
}

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) > 100 {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 100 characters")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

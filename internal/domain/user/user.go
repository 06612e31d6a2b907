// Package user defines the user domain model and roles.
package user

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/roomtrack/roomtrack/internal/domain"
)

// Role represents the platform role of a user. Roles are mutually
// exclusive and fixed at creation.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleLandlord Role = "landlord"
	RoleTenant   Role = "tenant"
)

// ValidRoles is the set of all valid user roles.
var ValidRoles = map[Role]bool{
	RoleAdmin:    true,
	RoleLandlord: true,
	RoleTenant:   true,
}

// User represents a registered platform user. A tenant holds zero or one
// active lease at any time; a landlord owns zero or more properties.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"` // never serialized
	Role           Role      `json:"role"`
	FullName       string    `json:"full_name,omitempty"`
	IDNumber       string    `json:"id_number,omitempty"`
	PassportNumber string    `json:"passport_number,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// CreateRequest is the input for registering a new user.
type CreateRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"` //nolint:gosec // request field, not a hardcoded secret
	Role           Role   `json:"role"`
	FullName       string `json:"full_name,omitempty"`
	IDNumber       string `json:"id_number,omitempty"`
	PassportNumber string `json:"passport_number,omitempty"`
	Phone          string `json:"phone,omitempty"`
}

// Validate checks that the CreateRequest has all required fields.
func (r *CreateRequest) Validate() error {
	if r.Username == "" {
		return fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if r.Email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}
	if !ValidRoles[r.Role] {
		return fmt.Errorf("%w: invalid role: must be admin, landlord, or tenant", domain.ErrValidation)
	}
	return nil
}

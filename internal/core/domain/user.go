package domain

import (
	"errors"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleUser    Role = "user"
	RolePartner Role = "partner"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RolePartner, RoleAdmin:
		return true
	}
	return false
}

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRole = errors.New("invalid role")
var ErrInvalidResetToken = errors.New("invalid or expired reset token")
var ErrForbidden = errors.New("access forbidden")

// User models an account in the marketplace. PasswordHash and the reset-token
// fields never leave the process.
type User struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Phone            string    `json:"phone,omitempty"`
	Address          string    `json:"address,omitempty"`
	Role             Role      `json:"role"`
	PartnerID        string    `json:"partner_id,omitempty"`
	ResetTokenHash   string    `json:"-"`
	ResetTokenExpiry time.Time `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

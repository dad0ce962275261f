package ports

import (
	"context"

	"github.com/storo/booking-api/internal/core/domain"
)

// RegisterInput carries a traveler registration. Partner accounts are created
// only through PartnerService.Register.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult bundles a signed credential with the public user view.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthService implements identity and access use cases.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*domain.User, error)
	// ForgotPassword never reveals whether the email is registered; it returns
	// nil for unknown addresses.
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, rawToken, newPassword string) error
}

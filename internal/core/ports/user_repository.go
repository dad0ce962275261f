package ports

import (
	"context"
	"time"

	"github.com/storo/booking-api/internal/core/domain"
)

// ProfileUpdate carries a partial profile mutation. Nil fields are left
// untouched; non-nil empty strings clear the stored value.
type ProfileUpdate struct {
	Name    *string
	Phone   *string
	Address *string
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByPartnerID resolves the owning account of a partner (1:1 pairing).
	FindByPartnerID(ctx context.Context, partnerID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*domain.User, error)

	// SetResetToken stores the one-way hash of a password-reset token and its
	// expiry on the user in a single update.
	SetResetToken(ctx context.Context, userID, tokenHash string, expiry time.Time) error
	// ResetPassword atomically matches a non-expired stored token hash,
	// replaces the password hash, and clears the token fields. Returns
	// domain.ErrInvalidResetToken when nothing matched.
	ResetPassword(ctx context.Context, tokenHash, newPasswordHash string, now time.Time) error

	// DeleteByPartnerID removes the owner account paired with a rejected
	// partner request.
	DeleteByPartnerID(ctx context.Context, partnerID string) error
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
}

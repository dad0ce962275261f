package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/storo/booking-api/internal/core/domain"
)

// TokenIssuer signs bearer credentials carrying the subject id, role, and
// partner affiliation. The secret and TTL are process-wide configuration.
type TokenIssuer struct {
	secret   string
	tokenTTL time.Duration
}

func NewTokenIssuer(secret string, tokenTTL time.Duration) *TokenIssuer {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &TokenIssuer{secret: secret, tokenTTL: tokenTTL}
}

// Issue returns a signed HS256 token for the user.
func (t *TokenIssuer) Issue(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"role":       string(user.Role),
		"partner_id": user.PartnerID,
		"exp":        time.Now().Add(t.tokenTTL).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(t.secret))
}

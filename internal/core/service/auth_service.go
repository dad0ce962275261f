package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/storo/booking-api/internal/core/domain"
	"github.com/storo/booking-api/internal/core/ports"
)

const resetTokenTTL = time.Hour
const minPasswordLen = 6

// AuthService implements registration, login, profile, and password reset.
type AuthService struct {
	users       ports.UserRepository
	tokens      *TokenIssuer
	mailer      ports.Mailer
	frontendURL string
	logger      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens *TokenIssuer, mailer ports.Mailer, frontendURL string, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:       users,
		tokens:      tokens,
		mailer:      mailer,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// Register creates a traveler account. Partner accounts are created only via
// partner registration, so the role is always RoleUser here.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	if input.Name == "" || input.Email == "" || len(input.Password) < minPasswordLen {
		return nil, domain.ErrInvalidCredentials
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return &ports.AuthResult{Token: token, User: created}, nil
}

// Login authenticates by email and password. Unknown email and wrong password
// fail identically so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, upd ports.ProfileUpdate) (*domain.User, error) {
	return s.users.UpdateProfile(ctx, userID, upd)
}

// ForgotPassword generates a single-use reset token, stores only its SHA-256
// hash with a one-hour expiry, and mails the raw token out-of-band. The
// response is identical whether or not the email is registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	rawToken := hex.EncodeToString(raw)

	expiry := time.Now().UTC().Add(resetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, hashToken(rawToken), expiry); err != nil {
		return err
	}

	resetURL := s.frontendURL + "/reset-password/" + rawToken
	s.dispatchMail(user.Email, "password reset", func(ctx context.Context) error {
		return s.mailer.SendPasswordReset(ctx, user.Email, user.Name, resetURL)
	})

	return nil
}

// ResetPassword consumes a reset token. The repository matches the token hash
// and expiry and clears the token in one conditional update, so a token can
// be spent at most once.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if rawToken == "" || len(newPassword) < minPasswordLen {
		return domain.ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.users.ResetPassword(ctx, hashToken(rawToken), string(hash), time.Now().UTC())
}

// dispatchMail sends in the background; delivery failure is logged, never
// surfaced to the caller.
func (s *AuthService) dispatchMail(to, kind string, send func(context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := send(ctx); err != nil {
			s.logger.Warn().Err(err).Str("to", to).Str("email", kind).Msg("email delivery failed")
		}
	}()
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

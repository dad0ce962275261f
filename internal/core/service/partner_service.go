package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/storo/booking-api/internal/core/domain"
	"github.com/storo/booking-api/internal/core/ports"
)

// DefaultNearbyRadiusMeters is used when a discovery query omits the radius.
const DefaultNearbyRadiusMeters = 2000

// PartnerService implements partner registration, discovery, and dashboard.
type PartnerService struct {
	partners ports.PartnerRepository
	users    ports.UserRepository
	bookings ports.BookingRepository
	tokens   *TokenIssuer
	logger   zerolog.Logger
}

func NewPartnerService(
	partners ports.PartnerRepository,
	users ports.UserRepository,
	bookings ports.BookingRepository,
	tokens *TokenIssuer,
	logger zerolog.Logger,
) *PartnerService {
	return &PartnerService{
		partners: partners,
		users:    users,
		bookings: bookings,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates an unapproved partner and its paired owner account. The
// two inserts are not transactional; a failed owner insert compensates by
// deleting the partner so no orphan survives.
func (s *PartnerService) Register(ctx context.Context, input ports.RegisterPartnerInput) (*ports.RegisterPartnerResult, error) {
	if input.OwnerName == "" || input.OwnerEmail == "" || len(input.OwnerPassword) < minPasswordLen {
		return nil, domain.ErrInvalidCredentials
	}

	email := strings.ToLower(strings.TrimSpace(input.OwnerEmail))
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.OwnerPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	partner, err := s.partners.Create(ctx, &domain.Partner{
		Name:    input.Name,
		Address: input.Address,
		Location: domain.GeoPoint{
			Longitude: input.Longitude,
			Latitude:  input.Latitude,
		},
		Capacity: input.Capacity,
		RateCard: domain.RateCard{
			Base:    input.Base,
			PerKg:   input.PerKg,
			PerHour: input.PerHour,
		},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	owner, err := s.users.Create(ctx, &domain.User{
		Name:         input.OwnerName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RolePartner,
		PartnerID:    partner.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if delErr := s.partners.Delete(ctx, partner.ID); delErr != nil {
			s.logger.Error().Err(delErr).Str("partner_id", partner.ID).Msg("orphaned partner after failed owner creation")
		}
		return nil, err
	}

	token, err := s.tokens.Issue(owner)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("partner_id", partner.ID).
		Str("owner_id", owner.ID).
		Msg("partner registered, awaiting approval")

	return &ports.RegisterPartnerResult{Token: token, User: owner, Partner: partner}, nil
}

// FindNearby returns approved partners within the radius, nearest first.
func (s *PartnerService) FindNearby(ctx context.Context, lng, lat float64, radiusMeters int) ([]*domain.Partner, error) {
	if radiusMeters <= 0 {
		radiusMeters = DefaultNearbyRadiusMeters
	}
	return s.partners.FindNearby(ctx, lng, lat, radiusMeters)
}

func (s *PartnerService) Profile(ctx context.Context, partnerID string) (*domain.Partner, error) {
	return s.partners.FindByID(ctx, partnerID)
}

func (s *PartnerService) Stats(ctx context.Context, partnerID string, from, to time.Time) (*ports.BookingStats, error) {
	return s.bookings.Stats(ctx, partnerID, ports.BookingRange{From: from, To: to})
}

// Bookings lists the partner's confirmed bookings within the selected window.
func (s *PartnerService) Bookings(ctx context.Context, partnerID string, filter ports.DateFilter, from, to time.Time) ([]*ports.PartnerBooking, error) {
	rng := resolveDateFilter(filter, from, to, time.Now().UTC())
	return s.bookings.ListForPartner(ctx, partnerID, rng)
}

// resolveDateFilter maps a relative window onto an absolute range against the
// booking creation timestamp. Custom uses the caller-supplied bounds.
func resolveDateFilter(filter ports.DateFilter, from, to, now time.Time) ports.BookingRange {
	switch filter {
	case ports.FilterDay:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return ports.BookingRange{From: start}
	case ports.FilterWeek:
		return ports.BookingRange{From: now.AddDate(0, 0, -7)}
	case ports.FilterMonth:
		return ports.BookingRange{From: now.AddDate(0, 0, -30)}
	case ports.FilterYear:
		return ports.BookingRange{From: now.AddDate(-1, 0, 0)}
	case ports.FilterCustom:
		return ports.BookingRange{From: from, To: to}
	default:
		return ports.BookingRange{}
	}
}

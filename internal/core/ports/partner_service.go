package ports

import (
	"context"
	"time"

	"github.com/storo/booking-api/internal/core/domain"
)

// DateFilter selects a relative window for partner dashboard queries.
type DateFilter string

const (
	FilterNone   DateFilter = ""
	FilterDay    DateFilter = "day"
	FilterWeek   DateFilter = "week"
	FilterMonth  DateFilter = "month"
	FilterYear   DateFilter = "year"
	FilterCustom DateFilter = "custom"
)

// RegisterPartnerInput carries a prospective partner's storage location and
// the owner account created alongside it.
type RegisterPartnerInput struct {
	Name      string
	Address   string
	Longitude float64
	Latitude  float64
	Capacity  int
	Base      float64
	PerKg     float64
	PerHour   float64

	OwnerName     string
	OwnerEmail    string
	OwnerPassword string
}

// RegisterPartnerResult is returned after a successful partner registration.
// The partner starts unapproved; the owner can sign in immediately.
type RegisterPartnerResult struct {
	Token   string
	User    *domain.User
	Partner *domain.Partner
}

// PartnerService implements the partner directory and dashboard use cases.
type PartnerService interface {
	Register(ctx context.Context, input RegisterPartnerInput) (*RegisterPartnerResult, error)
	// FindNearby returns approved partners within radiusMeters of the point,
	// nearest first. radiusMeters <= 0 falls back to the 2000 m default.
	FindNearby(ctx context.Context, lng, lat float64, radiusMeters int) ([]*domain.Partner, error)
	Profile(ctx context.Context, partnerID string) (*domain.Partner, error)
	Stats(ctx context.Context, partnerID string, from, to time.Time) (*BookingStats, error)
	Bookings(ctx context.Context, partnerID string, filter DateFilter, from, to time.Time) ([]*PartnerBooking, error)
}

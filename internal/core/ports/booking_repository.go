package ports

import (
	"context"
	"time"

	"github.com/storo/booking-api/internal/core/domain"
)

// BookingRange bounds a query by creation timestamp. Zero values are
// unbounded on that side.
type BookingRange struct {
	From time.Time
	To   time.Time
}

// UserBooking is a booking joined with the partner's display fields, as shown
// on a traveler's booking list.
type UserBooking struct {
	domain.Booking
	PartnerName    string `json:"partner_name"`
	PartnerAddress string `json:"partner_address"`
}

// PartnerBooking is a booking joined with the requesting user's contact
// fields, as shown on a partner's dashboard.
type PartnerBooking struct {
	domain.Booking
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	UserPhone string `json:"user_phone,omitempty"`
}

// BookingStats aggregates bookings in {booked, collected} status.
type BookingStats struct {
	Count               int64   `json:"total_bookings"`
	TotalEarnings       float64 `json:"total_earnings"`
	PaidCount           int64   `json:"paid_bookings"`
	PendingPaymentCount int64   `json:"pending_payments"`
	AverageValue        float64 `json:"average_booking_value"`
}

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	// FindByIdempotencyKey resolves a replayed creation. The lookup is scoped
	// to the requesting user so a colliding key never surfaces another
	// user's booking.
	FindByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Booking, error)

	// UpdateStatus sets the status in a single conditional update matching the
	// expected current status, so concurrent transitions cannot clobber each
	// other. Returns domain.ErrInvalidTransition when the document no longer
	// holds the expected status.
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) (*domain.Booking, error)

	// ConfirmPayment marks the booking paid and promotes a still-pending
	// booking to booked. Safe to replay: a second call leaves the document
	// unchanged and returns it.
	ConfirmPayment(ctx context.Context, id string) (*domain.Booking, error)

	// ListForUser returns the user's bookings in {booked, collected} status,
	// newest first, joined with partner name and address.
	ListForUser(ctx context.Context, userID string) ([]*UserBooking, error)
	// ListForPartner returns the partner's bookings in {booked, collected}
	// status within the range, newest first, joined with user contact fields.
	ListForPartner(ctx context.Context, partnerID string, rng BookingRange) ([]*PartnerBooking, error)
	Stats(ctx context.Context, partnerID string, rng BookingRange) (*BookingStats, error)

	// DeleteOwned removes a still-pending booking scoped to its owner in one
	// operation. A missing, non-owned, or already-confirmed booking yields
	// domain.ErrBookingNotFound, so existence is not leaked to other users.
	DeleteOwned(ctx context.Context, id, userID string) error
}

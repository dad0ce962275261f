package ports

import (
	"context"
	"time"

	"github.com/storo/booking-api/internal/core/domain"
)

// PaymentMethodPayLater defers payment to collection time; the booking is
// confirmed immediately. Any other method leaves the booking pending until
// the gateway confirms funds.
const PaymentMethodPayLater = "pay-later"

// CreateBookingInput carries all data needed to create a booking.
type CreateBookingInput struct {
	UserID        string
	PartnerID     string
	WeightKg      float64
	StartAt       time.Time
	EndAt         time.Time
	PaymentMethod string
	// IdempotencyKey, when set, makes retried creations return the booking
	// created by the first attempt.
	IdempotencyKey string
}

// BookingService implements the booking lifecycle use cases.
type BookingService interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	ListForUser(ctx context.Context, userID string) ([]*UserBooking, error)
	UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus) (*domain.Booking, error)
	Delete(ctx context.Context, bookingID, userID string) error
	// ConfirmPayment flips payment status to paid and promotes a pending
	// booking to booked. Replays are no-op successes.
	ConfirmPayment(ctx context.Context, bookingID string) (*domain.Booking, error)
}

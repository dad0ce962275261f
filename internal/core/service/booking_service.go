package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/storo/booking-api/internal/core/domain"
	"github.com/storo/booking-api/internal/core/ports"
)

// BookingService implements the booking lifecycle.
type BookingService struct {
	bookings ports.BookingRepository
	partners ports.PartnerRepository
	logger   zerolog.Logger
}

func NewBookingService(bookings ports.BookingRepository, partners ports.PartnerRepository, logger zerolog.Logger) *BookingService {
	return &BookingService{bookings: bookings, partners: partners, logger: logger}
}

// Create prices and persists a new booking against an approved partner. The
// price is computed once from the partner's rate card as it exists now. With
// an idempotency key, a retried creation returns the original booking.
func (s *BookingService) Create(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error) {
	if input.IdempotencyKey != "" {
		existing, err := s.bookings.FindByIdempotencyKey(ctx, input.UserID, input.IdempotencyKey)
		if err == nil && existing != nil {
			s.logger.Info().
				Str("idempotency_key", input.IdempotencyKey).
				Str("booking_id", existing.ID).
				Msg("idempotent replay")
			return existing, nil
		}
	}

	partner, err := s.partners.FindByID(ctx, input.PartnerID)
	if err != nil {
		return nil, err
	}
	// Unapproved partners are invisible to discovery; booking against one
	// directly is rejected the same way.
	if !partner.Approved {
		return nil, domain.ErrPartnerNotFound
	}

	if input.WeightKg <= 0 {
		return nil, fmt.Errorf("%w: weight must be positive", domain.ErrInvalidRange)
	}

	price, err := domain.Quote(partner.RateCard, input.WeightKg, input.StartAt, input.EndAt)
	if err != nil {
		return nil, err
	}

	status := domain.BookingPending
	if input.PaymentMethod == ports.PaymentMethodPayLater {
		status = domain.BookingBooked
	}

	now := time.Now().UTC()
	booking, err := s.bookings.Create(ctx, &domain.Booking{
		UserID:         input.UserID,
		PartnerID:      partner.ID,
		WeightKg:       input.WeightKg,
		StartAt:        input.StartAt.UTC(),
		EndAt:          input.EndAt.UTC(),
		Price:          price,
		Status:         status,
		PaymentStatus:  domain.PaymentPending,
		IdempotencyKey: input.IdempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("partner_id", partner.ID).Msg("failed to create booking")
		return nil, err
	}

	s.logger.Info().
		Str("booking_id", booking.ID).
		Str("partner_id", partner.ID).
		Float64("price", price).
		Str("status", string(status)).
		Msg("booking created")

	return booking, nil
}

func (s *BookingService) ListForUser(ctx context.Context, userID string) ([]*ports.UserBooking, error) {
	return s.bookings.ListForUser(ctx, userID)
}

// UpdateStatus applies a guarded state transition. The repository update is
// conditional on the status read here, so a concurrent transition loses
// cleanly instead of overwriting.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus) (*domain.Booking, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidTransition
	}

	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, booking.Status, status)
	}

	return s.bookings.UpdateStatus(ctx, bookingID, booking.Status, status)
}

// Delete cancels a booking the requesting user owns. Missing and non-owned
// bookings are indistinguishable to the caller.
func (s *BookingService) Delete(ctx context.Context, bookingID, userID string) error {
	return s.bookings.DeleteOwned(ctx, bookingID, userID)
}

// ConfirmPayment is invoked by the payment flow after a verified
// confirmation. Replays leave the booking unchanged.
func (s *BookingService) ConfirmPayment(ctx context.Context, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookings.ConfirmPayment(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("booking_id", booking.ID).
		Str("status", string(booking.Status)).
		Msg("payment confirmed")

	return booking, nil
}

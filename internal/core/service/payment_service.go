package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/storo/booking-api/internal/core/domain"
	"github.com/storo/booking-api/internal/core/ports"
)

// DedupChecker abstracts the idempotency store for payment confirmations.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, paymentID string) (bool, error)
	Mark(ctx context.Context, paymentID string) error
}

// PaymentService mediates between bookings and the external payment gateway.
type PaymentService struct {
	gateway  ports.PaymentGateway
	bookings ports.BookingService
	repo     ports.BookingRepository
	users    ports.UserRepository
	partners ports.PartnerRepository
	mailer   ports.Mailer
	dedup    DedupChecker
	currency string
	logger   zerolog.Logger
}

func NewPaymentService(
	gateway ports.PaymentGateway,
	bookings ports.BookingService,
	repo ports.BookingRepository,
	users ports.UserRepository,
	partners ports.PartnerRepository,
	mailer ports.Mailer,
	dedup DedupChecker,
	currency string,
	logger zerolog.Logger,
) *PaymentService {
	if currency == "" {
		currency = "INR"
	}
	return &PaymentService{
		gateway:  gateway,
		bookings: bookings,
		repo:     repo,
		users:    users,
		partners: partners,
		mailer:   mailer,
		dedup:    dedup,
		currency: currency,
		logger:   logger,
	}
}

// CreateOrder registers a gateway order for the stamped price of a booking
// the requesting user owns. The amount is converted to minor units.
func (s *PaymentService) CreateOrder(ctx context.Context, bookingID, userID string) (*domain.PaymentOrder, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, domain.ErrBookingNotFound
	}

	amount := int64(math.Round(booking.Price * 100))
	receipt := "storo_" + uuid.NewString()

	order, err := s.gateway.CreateOrder(ctx, amount, s.currency, receipt)
	if err != nil {
		s.logger.Error().Err(err).Str("booking_id", bookingID).Msg("gateway order creation failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}

	s.logger.Info().
		Str("booking_id", bookingID).
		Str("order_id", order.OrderID).
		Int64("amount", amount).
		Msg("payment order created")

	return order, nil
}

// Verify checks the gateway confirmation signature and, once, flips the
// booking to paid. A replayed confirmation short-circuits to the current
// booking state.
func (s *PaymentService) Verify(ctx context.Context, input ports.VerifyPaymentInput) (*domain.Booking, error) {
	if !s.gateway.VerifySignature(input.OrderID, input.PaymentID, input.Signature) {
		s.logger.Warn().
			Str("order_id", input.OrderID).
			Str("booking_id", input.BookingID).
			Msg("payment signature mismatch")
		return nil, domain.ErrPaymentVerification
	}

	current, err := s.repo.FindByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	// Same ownership rule as CreateOrder: a confirmation for someone else's
	// booking looks like a missing booking.
	if current.UserID != input.UserID {
		return nil, domain.ErrBookingNotFound
	}

	isDup, err := s.dedup.IsDuplicate(ctx, input.PaymentID)
	if err != nil {
		s.logger.Warn().Err(err).Str("payment_id", input.PaymentID).Msg("dedup check failed, confirming anyway")
	} else if isDup {
		s.logger.Debug().Str("payment_id", input.PaymentID).Msg("duplicate confirmation skipped")
		return current, nil
	}

	booking, err := s.bookings.ConfirmPayment(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}

	if markErr := s.dedup.Mark(ctx, input.PaymentID); markErr != nil {
		s.logger.Warn().Err(markErr).Str("payment_id", input.PaymentID).Msg("failed to set dedup key")
	}

	s.sendConfirmation(booking)
	return booking, nil
}

// sendConfirmation emails the traveler in the background. Lookups and
// delivery are best-effort.
func (s *PaymentService) sendConfirmation(booking *domain.Booking) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		user, err := s.users.FindByID(ctx, booking.UserID)
		if err != nil {
			s.logger.Warn().Err(err).Str("booking_id", booking.ID).Msg("confirmation email skipped")
			return
		}
		partnerName := ""
		if partner, err := s.partners.FindByID(ctx, booking.PartnerID); err == nil {
			partnerName = partner.Name
		}

		data := ports.BookingEmail{
			BookingID:     booking.ID,
			PartnerName:   partnerName,
			StartAt:       booking.StartAt.Format(time.RFC1123),
			EndAt:         booking.EndAt.Format(time.RFC1123),
			WeightKg:      booking.WeightKg,
			Price:         booking.Price,
			Status:        string(booking.Status),
			PaymentStatus: string(booking.PaymentStatus),
		}
		if err := s.mailer.SendBookingConfirmation(ctx, user.Email, user.Name, data); err != nil {
			s.logger.Warn().Err(err).Str("booking_id", booking.ID).Msg("confirmation email failed")
		}
	}()
}

package ports

import (
	"context"

	"github.com/storo/booking-api/internal/core/domain"
)

// PaymentGateway abstracts the external payment collaborator.
type PaymentGateway interface {
	// CreateOrder registers an order for the given amount in minor units.
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*domain.PaymentOrder, error)
	// VerifySignature checks the gateway's confirmation signature against the
	// known order before it is trusted.
	VerifySignature(orderID, paymentID, signature string) bool
}

// VerifyPaymentInput carries a gateway confirmation callback. UserID is the
// requesting account and must own the booking.
type VerifyPaymentInput struct {
	UserID    string
	BookingID string
	OrderID   string
	PaymentID string
	Signature string
}

// PaymentService implements order creation and confirmation verification.
type PaymentService interface {
	CreateOrder(ctx context.Context, bookingID, userID string) (*domain.PaymentOrder, error)
	Verify(ctx context.Context, input VerifyPaymentInput) (*domain.Booking, error)
}

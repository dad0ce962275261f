package ports

import (
	"context"

	"github.com/storo/booking-api/internal/core/domain"
)

// SupportService creates support tickets. Confirmation email delivery is
// best-effort and never fails the ticket.
type SupportService interface {
	CreateTicket(ctx context.Context, userID, subject, message string) (*domain.Ticket, error)
}

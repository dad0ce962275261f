package ports

import (
	"context"

	"github.com/storo/booking-api/internal/core/domain"
)

// TicketRepository persists support tickets.
type TicketRepository interface {
	Create(ctx context.Context, t *domain.Ticket) (*domain.Ticket, error)
}

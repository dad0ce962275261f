package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/storo/booking-api/internal/core/domain"
	"github.com/storo/booking-api/internal/core/ports"
)

// SupportService creates support tickets.
type SupportService struct {
	tickets ports.TicketRepository
	users   ports.UserRepository
	mailer  ports.Mailer
	logger  zerolog.Logger
}

func NewSupportService(tickets ports.TicketRepository, users ports.UserRepository, mailer ports.Mailer, logger zerolog.Logger) *SupportService {
	return &SupportService{tickets: tickets, users: users, mailer: mailer, logger: logger}
}

// CreateTicket records a new open ticket and dispatches a confirmation email
// in the background. Email failure never fails the ticket.
func (s *SupportService) CreateTicket(ctx context.Context, userID, subject, message string) (*domain.Ticket, error) {
	now := time.Now().UTC()
	ticket, err := s.tickets.Create(ctx, &domain.Ticket{
		UserID:    userID,
		Subject:   subject,
		Message:   message,
		Status:    domain.TicketOpen,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			s.logger.Warn().Err(err).Str("ticket_id", ticket.ID).Msg("ticket confirmation skipped")
			return
		}
		data := ports.TicketEmail{
			TicketID: ticket.ID,
			Subject:  ticket.Subject,
			Status:   string(ticket.Status),
		}
		if err := s.mailer.SendTicketConfirmation(ctx, user.Email, user.Name, data); err != nil {
			s.logger.Warn().Err(err).Str("ticket_id", ticket.ID).Msg("ticket confirmation failed")
		}
	}()

	s.logger.Info().Str("ticket_id", ticket.ID).Str("user_id", userID).Msg("support ticket created")
	return ticket, nil
}

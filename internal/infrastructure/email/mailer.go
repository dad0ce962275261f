// Package email delivers transactional mail over SMTP. Messages are plain
// text; callers are expected to dispatch sends off the request path and log
// failures rather than propagate them.
package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/storo/booking-api/internal/core/ports"
)

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPMailer implements ports.Mailer over plain SMTP with AUTH.
type SMTPMailer struct {
	cfg Config
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	if cfg.From == "" {
		cfg.From = "Storo <noreply@storo.example>"
	}
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, name, resetURL string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nA password reset was requested for your Storo account.\n"+
			"Open the link below within one hour to choose a new password:\n\n%s\n\n"+
			"If you did not request this, you can ignore this email.\n",
		name, resetURL)
	return m.send(ctx, to, "Reset your Storo password", body)
}

func (m *SMTPMailer) SendBookingConfirmation(ctx context.Context, to, name string, data ports.BookingEmail) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour luggage storage booking is confirmed.\n\n"+
			"Booking:  #%s\nPartner:  %s\nDrop-off: %s\nPick-up:  %s\n"+
			"Weight:   %.1f kg\nPrice:    %.2f\nStatus:   %s\nPayment:  %s\n\n"+
			"Thanks for choosing Storo.\n",
		name, data.BookingID, data.PartnerName, data.StartAt, data.EndAt,
		data.WeightKg, data.Price, data.Status, data.PaymentStatus)
	return m.send(ctx, to, "Booking confirmation - Storo #"+data.BookingID, body)
}

func (m *SMTPMailer) SendTicketConfirmation(ctx context.Context, to, name string, data ports.TicketEmail) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nWe received your support request and will get back to you soon.\n\n"+
			"Ticket:  #%s\nSubject: %s\nStatus:  %s\n",
		name, data.TicketID, data.Subject, data.Status)
	return m.send(ctx, to, "Support ticket received - Storo #"+data.TicketID, body)
}

// send blocks until delivery or ctx cancellation. net/smtp has no context
// support, so the dial runs in a goroutine and the result is raced against ctx.
func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	addr := m.cfg.Host + ":" + m.cfg.Port

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, m.cfg.Username, []string{to}, []byte(msg))
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	}
}

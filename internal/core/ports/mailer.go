package ports

import "context"

// BookingEmail is the template data for a booking confirmation.
type BookingEmail struct {
	BookingID     string
	PartnerName   string
	StartAt       string
	EndAt         string
	WeightKg      float64
	Price         float64
	Status        string
	PaymentStatus string
}

// TicketEmail is the template data for a support-ticket confirmation.
type TicketEmail struct {
	TicketID string
	Subject  string
	Status   string
}

// Mailer delivers transactional email. Callers dispatch asynchronously and
// log failures; delivery errors must never propagate to the triggering
// operation's response.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, name, resetURL string) error
	SendBookingConfirmation(ctx context.Context, to, name string, data BookingEmail) error
	SendTicketConfirmation(ctx context.Context, to, name string, data TicketEmail) error
}

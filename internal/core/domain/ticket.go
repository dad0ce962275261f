package domain

import "time"

// TicketStatus is the support-ticket workflow state.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in-progress"
	TicketResolved   TicketStatus = "resolved"
)

// Ticket is a support request raised by a user.
type Ticket struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Subject   string       `json:"subject"`
	Message   string       `json:"message"`
	Status    TicketStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

package domain

import (
	"errors"
	"time"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingBooked    BookingStatus = "booked"
	BookingCollected BookingStatus = "collected"
)

// PaymentStatus tracks whether funds were captured for a booking.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// validTransitions defines the allowed state machine transitions.
// Cancellation is not a transition: pending bookings are deleted instead.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingPending: {BookingBooked},
	BookingBooked:  {BookingCollected},
}

var ErrBookingNotFound = errors.New("booking not found")
var ErrInvalidTransition = errors.New("invalid status transition")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingBooked, BookingCollected:
		return true
	}
	return false
}

// Booking is a reservation of storage capacity for a weight and time window.
// Price is stamped once at creation from the partner's rate card and never
// recomputed afterwards.
type Booking struct {
	ID             string        `json:"id"`
	UserID         string        `json:"user_id"`
	PartnerID      string        `json:"partner_id"`
	WeightKg       float64       `json:"weight_kg"`
	StartAt        time.Time     `json:"start_at"`
	EndAt          time.Time     `json:"end_at"`
	Price          float64       `json:"price"`
	Status         BookingStatus `json:"status"`
	PaymentStatus  PaymentStatus `json:"payment_status"`
	IdempotencyKey string        `json:"-"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

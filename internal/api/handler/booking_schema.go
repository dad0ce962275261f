package handler

import "time"

type createBookingRequest struct {
	PartnerID     string    `json:"partner_id"     validate:"required"`
	WeightKg      float64   `json:"weight_kg"      validate:"required,gt=0"`
	StartAt       time.Time `json:"start_at"       validate:"required"`
	EndAt         time.Time `json:"end_at"         validate:"required"`
	PaymentMethod string    `json:"payment_method" validate:"omitempty,oneof=pay-later online"`
}

type updateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending booked collected"`
}

package handler

import (
	"github.com/storo/booking-api/internal/core/domain"
)

type registerPartnerRequest struct {
	Name      string  `json:"name"      validate:"required"`
	Address   string  `json:"address"   validate:"required"`
	Longitude float64 `json:"lng"       validate:"required"`
	Latitude  float64 `json:"lat"       validate:"required"`
	Capacity  int     `json:"capacity"  validate:"required,gt=0"`
	Base      float64 `json:"base"      validate:"gte=0"`
	PerKg     float64 `json:"per_kg"    validate:"gte=0"`
	PerHour   float64 `json:"per_hour"  validate:"gte=0"`

	OwnerName     string `json:"owner_name"     validate:"required"`
	OwnerEmail    string `json:"owner_email"    validate:"required,email"`
	OwnerPassword string `json:"owner_password" validate:"required,min=6"`
}

type registerPartnerResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    *domain.User    `json:"user"`
	Partner *domain.Partner `json:"partner"`
}

type nearbyRequest struct {
	Longitude float64 `json:"lng"    validate:"required"`
	Latitude  float64 `json:"lat"    validate:"required"`
	Radius    int     `json:"radius" validate:"omitempty,gt=0"`
}

// dashboardQuery is bound from query parameters on partner dashboard routes.
type dashboardQuery struct {
	Filter    string `query:"filter"     validate:"omitempty,oneof=day week month year custom"`
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

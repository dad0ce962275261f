package domain

import (
	"errors"
	"time"
)

var ErrPartnerNotFound = errors.New("partner not found")

// GeoPoint is a geographic point in GeoJSON coordinate order: longitude first.
type GeoPoint struct {
	Longitude float64 `json:"lng"`
	Latitude  float64 `json:"lat"`
}

// RateCard holds a partner's pricing parameters.
type RateCard struct {
	Base    float64 `json:"base"`
	PerKg   float64 `json:"per_kg"`
	PerHour float64 `json:"per_hour"`
}

// Partner is a storage-supply location. Approved gates visibility in
// discovery queries; it defaults to false until an admin approves.
type Partner struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Location  GeoPoint  `json:"location"`
	Capacity  int       `json:"capacity"`
	RateCard  RateCard  `json:"rate_card"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

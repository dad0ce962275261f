package domain

import (
	"errors"
	"math"
	"time"
)

var ErrInvalidRange = errors.New("end time before start time")

// Quote computes the storage fee for a weight and time window against a
// partner's rate card:
//
//	price = base + perKg*weightKg + perHour*ceil(hours)
//
// Partial hours bill as a whole hour. Equal start and end times are valid and
// bill only the base and weight components. The result is deterministic for
// identical inputs; it is persisted on the booking and never recomputed.
func Quote(card RateCard, weightKg float64, startAt, endAt time.Time) (float64, error) {
	if endAt.Before(startAt) {
		return 0, ErrInvalidRange
	}
	hours := math.Ceil(endAt.Sub(startAt).Hours())
	return card.Base + card.PerKg*weightKg + card.PerHour*hours, nil
}

package domain

import (
	"testing"
	"time"
)

func TestQuote(t *testing.T) {
	card := RateCard{Base: 100, PerKg: 10, PerHour: 5}
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	price, err := Quote(card, 5, start, start.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}
	if price != 160 {
		t.Fatalf("expected 160, got %v", price)
	}
}

func TestQuote_PartialHourBillsWhole(t *testing.T) {
	card := RateCard{Base: 100, PerKg: 10, PerHour: 5}
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	oneHour, err := Quote(card, 5, start, start.Add(time.Hour))
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}
	partial, err := Quote(card, 5, start, start.Add(61*time.Minute))
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}
	if partial != oneHour+card.PerHour {
		t.Fatalf("61 minutes should bill as 2 hours: got %v, want %v", partial, oneHour+card.PerHour)
	}
}

func TestQuote_ZeroDuration(t *testing.T) {
	card := RateCard{Base: 100, PerKg: 10, PerHour: 5}
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	price, err := Quote(card, 3, start, start)
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}
	if price != 130 {
		t.Fatalf("zero duration should bill base and weight only: got %v", price)
	}
}

func TestQuote_Monotonic(t *testing.T) {
	card := RateCard{Base: 50, PerKg: 2, PerHour: 3}
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	shorter, _ := Quote(card, 4, start, start.Add(3*time.Hour))
	longer, _ := Quote(card, 4, start, start.Add(7*time.Hour))
	if longer < shorter {
		t.Fatalf("longer window priced below shorter: %v < %v", longer, shorter)
	}

	lighter, _ := Quote(card, 4, start, start.Add(3*time.Hour))
	heavier, _ := Quote(card, 9, start, start.Add(3*time.Hour))
	if heavier < lighter {
		t.Fatalf("heavier weight priced below lighter: %v < %v", heavier, lighter)
	}
}

func TestQuote_InvertedRange(t *testing.T) {
	card := RateCard{Base: 100, PerKg: 10, PerHour: 5}
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	if _, err := Quote(card, 5, start, start.Add(-time.Minute)); err != ErrInvalidRange {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestQuote_Deterministic(t *testing.T) {
	card := RateCard{Base: 75, PerKg: 12.5, PerHour: 4.25}
	start := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	first, err := Quote(card, 6.5, start, end)
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}
	second, err := Quote(card, 6.5, start, end)
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}
	if first != second {
		t.Fatalf("identical inputs priced differently: %v vs %v", first, second)
	}
}

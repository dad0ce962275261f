package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/storo/booking-api/internal/core/domain"
	"github.com/storo/booking-api/internal/core/ports"
)

type paymentFixture struct {
	svc      *PaymentService
	repo     *stubBookingRepo
	users    *stubUserRepo
	gateway  *stubGateway
	dedup    *stubDedup
	bookings *BookingService
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	partners := newStubPartnerRepo()
	repo := newStubBookingRepo()
	users := newStubUserRepo()
	gateway := &stubGateway{signature: "valid-sig"}
	dedup := newStubDedup()
	bookings := NewBookingService(repo, partners, zerolog.Nop())

	svc := NewPaymentService(gateway, bookings, repo, users, partners, &stubMailer{}, dedup, "INR", zerolog.Nop())
	return &paymentFixture{svc: svc, repo: repo, users: users, gateway: gateway, dedup: dedup, bookings: bookings}
}

func seedBooking(t *testing.T, repo *stubBookingRepo, userID string, price float64) *domain.Booking {
	t.Helper()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	booking, err := repo.Create(context.Background(), &domain.Booking{
		UserID:        userID,
		PartnerID:     "partner_1",
		WeightKg:      5,
		StartAt:       start,
		EndAt:         start.Add(2 * time.Hour),
		Price:         price,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
	})
	if err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return booking
}

func TestPaymentService_CreateOrder(t *testing.T) {
	f := newPaymentFixture(t)
	booking := seedBooking(t, f.repo, "user_1", 160.50)

	order, err := f.svc.CreateOrder(context.Background(), booking.ID, "user_1")
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if order.Amount != 16050 {
		t.Fatalf("amount must be in minor units: got %d, want 16050", order.Amount)
	}
	if order.Currency != "INR" {
		t.Fatalf("unexpected currency: %s", order.Currency)
	}
	if order.Receipt == "" {
		t.Fatalf("expected a receipt reference")
	}
}

func TestPaymentService_CreateOrder_NotOwner(t *testing.T) {
	f := newPaymentFixture(t)
	booking := seedBooking(t, f.repo, "user_1", 160)

	if _, err := f.svc.CreateOrder(context.Background(), booking.ID, "user_2"); !errors.Is(err, domain.ErrBookingNotFound) {
		t.Fatalf("foreign booking must look missing, got %v", err)
	}
}

func TestPaymentService_CreateOrder_GatewayDown(t *testing.T) {
	f := newPaymentFixture(t)
	f.gateway.orderErr = errors.New("connection refused")
	booking := seedBooking(t, f.repo, "user_1", 160)

	if _, err := f.svc.CreateOrder(context.Background(), booking.ID, "user_1"); !errors.Is(err, domain.ErrUpstreamFailure) {
		t.Fatalf("expected ErrUpstreamFailure, got %v", err)
	}
}

func TestPaymentService_Verify(t *testing.T) {
	f := newPaymentFixture(t)
	booking := seedBooking(t, f.repo, "user_1", 160)

	paid, err := f.svc.Verify(context.Background(), ports.VerifyPaymentInput{
		UserID:    "user_1",
		BookingID: booking.ID,
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: "valid-sig",
	})
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if paid.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("expected paid, got %s", paid.PaymentStatus)
	}
	if paid.Status != domain.BookingBooked {
		t.Fatalf("pending booking should promote to booked, got %s", paid.Status)
	}
}

func TestPaymentService_Verify_NotOwner(t *testing.T) {
	f := newPaymentFixture(t)
	booking := seedBooking(t, f.repo, "user_1", 160)

	_, err := f.svc.Verify(context.Background(), ports.VerifyPaymentInput{
		UserID:    "user_2",
		BookingID: booking.ID,
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: "valid-sig",
	})
	if !errors.Is(err, domain.ErrBookingNotFound) {
		t.Fatalf("foreign booking must look missing, got %v", err)
	}

	current, _ := f.repo.FindByID(context.Background(), booking.ID)
	if current.PaymentStatus != domain.PaymentPending {
		t.Fatalf("foreign confirmation must not mark the booking paid")
	}
}

func TestPaymentService_Verify_BadSignature(t *testing.T) {
	f := newPaymentFixture(t)
	booking := seedBooking(t, f.repo, "user_1", 160)

	_, err := f.svc.Verify(context.Background(), ports.VerifyPaymentInput{
		UserID:    "user_1",
		BookingID: booking.ID,
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: "forged",
	})
	if !errors.Is(err, domain.ErrPaymentVerification) {
		t.Fatalf("expected ErrPaymentVerification, got %v", err)
	}

	current, _ := f.repo.FindByID(context.Background(), booking.ID)
	if current.PaymentStatus != domain.PaymentPending {
		t.Fatalf("forged confirmation must not mark the booking paid")
	}
}

func TestPaymentService_Verify_DuplicateConfirmation(t *testing.T) {
	f := newPaymentFixture(t)
	booking := seedBooking(t, f.repo, "user_1", 160)

	input := ports.VerifyPaymentInput{
		UserID:    "user_1",
		BookingID: booking.ID,
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: "valid-sig",
	}
	first, err := f.svc.Verify(context.Background(), input)
	if err != nil {
		t.Fatalf("first verify failed: %v", err)
	}

	second, err := f.svc.Verify(context.Background(), input)
	if err != nil {
		t.Fatalf("replayed verify failed: %v", err)
	}
	if second.ID != first.ID || second.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("replay must return the already-paid booking: %+v", second)
	}
	if dup, _ := f.dedup.IsDuplicate(context.Background(), "pay_1"); !dup {
		t.Fatalf("payment id should be marked after the first confirmation")
	}
}

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/storo/booking-api/internal/core/domain"
	"github.com/storo/booking-api/internal/core/ports"
)

// In-memory fakes for the repository ports, shared across the service tests.

type stubUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	seq       int
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user_%d", r.seq)
	r.users[copy.ID] = copy
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByPartnerID(_ context.Context, partnerID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.PartnerID == partnerID {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, upd ports.ProfileUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.Address != nil {
		u.Address = *upd.Address
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) SetResetToken(_ context.Context, userID, tokenHash string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetTokenHash = tokenHash
	u.ResetTokenExpiry = expiry
	return nil
}

func (r *stubUserRepo) ResetPassword(_ context.Context, tokenHash, newPasswordHash string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ResetTokenHash == tokenHash && u.ResetTokenExpiry.After(now) {
			u.PasswordHash = newPasswordHash
			u.ResetTokenHash = ""
			u.ResetTokenExpiry = time.Time{}
			return nil
		}
	}
	return domain.ErrInvalidResetToken
}

func (r *stubUserRepo) DeleteByPartnerID(_ context.Context, partnerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if u.PartnerID == partnerID {
			delete(r.users, id)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) CountByRole(_ context.Context, role domain.Role) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type stubPartnerRepo struct {
	mu        sync.Mutex
	partners  map[string]*domain.Partner
	seq       int
	gotRadius int
}

func newStubPartnerRepo() *stubPartnerRepo {
	return &stubPartnerRepo{partners: make(map[string]*domain.Partner)}
}

func clonePartner(p *domain.Partner) *domain.Partner {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubPartnerRepo) Create(_ context.Context, p *domain.Partner) (*domain.Partner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	copy := clonePartner(p)
	copy.ID = fmt.Sprintf("partner_%d", r.seq)
	r.partners[copy.ID] = copy
	return clonePartner(copy), nil
}

func (r *stubPartnerRepo) FindByID(_ context.Context, id string) (*domain.Partner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.partners[id]; ok {
		return clonePartner(p), nil
	}
	return nil, domain.ErrPartnerNotFound
}

func (r *stubPartnerRepo) FindNearby(_ context.Context, lng, lat float64, radiusMeters int) ([]*domain.Partner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gotRadius = radiusMeters
	var out []*domain.Partner
	for _, p := range r.partners {
		if p.Approved {
			out = append(out, clonePartner(p))
		}
	}
	return out, nil
}

func (r *stubPartnerRepo) ListByApproval(_ context.Context, approved bool) ([]*domain.Partner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Partner
	for _, p := range r.partners {
		if p.Approved == approved {
			out = append(out, clonePartner(p))
		}
	}
	return out, nil
}

func (r *stubPartnerRepo) Approve(_ context.Context, id string) (*domain.Partner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.partners[id]
	if !ok {
		return nil, domain.ErrPartnerNotFound
	}
	p.Approved = true
	return clonePartner(p), nil
}

func (r *stubPartnerRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.partners[id]; !ok {
		return domain.ErrPartnerNotFound
	}
	delete(r.partners, id)
	return nil
}

func (r *stubPartnerRepo) CountAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.partners)), nil
}

func (r *stubPartnerRepo) CountByApproval(_ context.Context, approved bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.partners {
		if p.Approved == approved {
			n++
		}
	}
	return n, nil
}

type stubBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*domain.Booking
	seq      int
	gotRange ports.BookingRange
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{bookings: make(map[string]*domain.Booking)}
}

func cloneBooking(b *domain.Booking) *domain.Booking {
	if b == nil {
		return nil
	}
	clone := *b
	return &clone
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	copy := cloneBooking(b)
	copy.ID = fmt.Sprintf("booking_%d", r.seq)
	r.bookings[copy.ID] = copy
	return cloneBooking(copy), nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok {
		return cloneBooking(b), nil
	}
	return nil, domain.ErrBookingNotFound
}

func (r *stubBookingRepo) FindByIdempotencyKey(_ context.Context, userID, key string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.UserID == userID && b.IdempotencyKey == key {
			return cloneBooking(b), nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

func (r *stubBookingRepo) UpdateStatus(_ context.Context, id string, from, to domain.BookingStatus) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	if b.Status != from {
		return nil, domain.ErrInvalidTransition
	}
	b.Status = to
	return cloneBooking(b), nil
}

func (r *stubBookingRepo) ConfirmPayment(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	b.PaymentStatus = domain.PaymentPaid
	if b.Status == domain.BookingPending {
		b.Status = domain.BookingBooked
	}
	return cloneBooking(b), nil
}

func (r *stubBookingRepo) ListForUser(_ context.Context, userID string) ([]*ports.UserBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*ports.UserBooking
	for _, b := range r.bookings {
		if b.UserID == userID && b.Status != domain.BookingPending {
			out = append(out, &ports.UserBooking{Booking: *cloneBooking(b)})
		}
	}
	return out, nil
}

func (r *stubBookingRepo) ListForPartner(_ context.Context, partnerID string, rng ports.BookingRange) ([]*ports.PartnerBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gotRange = rng
	var out []*ports.PartnerBooking
	for _, b := range r.bookings {
		if b.PartnerID == partnerID && b.Status != domain.BookingPending {
			out = append(out, &ports.PartnerBooking{Booking: *cloneBooking(b)})
		}
	}
	return out, nil
}

func (r *stubBookingRepo) Stats(_ context.Context, partnerID string, rng ports.BookingRange) (*ports.BookingStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gotRange = rng
	stats := &ports.BookingStats{}
	for _, b := range r.bookings {
		if b.PartnerID != partnerID || b.Status == domain.BookingPending {
			continue
		}
		if !rng.From.IsZero() && b.CreatedAt.Before(rng.From) {
			continue
		}
		if !rng.To.IsZero() && !b.CreatedAt.Before(rng.To) {
			continue
		}
		stats.Count++
		stats.TotalEarnings += b.Price
		switch b.PaymentStatus {
		case domain.PaymentPaid:
			stats.PaidCount++
		case domain.PaymentPending:
			stats.PendingPaymentCount++
		}
	}
	if stats.Count > 0 {
		stats.AverageValue = stats.TotalEarnings / float64(stats.Count)
	}
	return stats, nil
}

func (r *stubBookingRepo) DeleteOwned(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.UserID != userID || b.Status != domain.BookingPending {
		return domain.ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}

type stubTicketRepo struct {
	mu      sync.Mutex
	tickets []*domain.Ticket
	seq     int
}

func (r *stubTicketRepo) Create(_ context.Context, t *domain.Ticket) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	clone := *t
	clone.ID = fmt.Sprintf("ticket_%d", r.seq)
	r.tickets = append(r.tickets, &clone)
	return &clone, nil
}

// stubMailer records deliveries; callers dispatch asynchronously, so access
// is synchronised.
type stubMailer struct {
	mu       sync.Mutex
	resets   []string
	bookings []string
	tickets  []string
}

func (m *stubMailer) SendPasswordReset(_ context.Context, to, _ string, resetURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets = append(m.resets, resetURL)
	return nil
}

func (m *stubMailer) SendBookingConfirmation(_ context.Context, to, _ string, _ ports.BookingEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings = append(m.bookings, to)
	return nil
}

func (m *stubMailer) SendTicketConfirmation(_ context.Context, to, _ string, _ ports.TicketEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets = append(m.tickets, to)
	return nil
}

func (m *stubMailer) resetURLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.resets...)
}

type stubGateway struct {
	orderErr  error
	signature string
	orders    int
}

func (g *stubGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (*domain.PaymentOrder, error) {
	if g.orderErr != nil {
		return nil, g.orderErr
	}
	g.orders++
	return &domain.PaymentOrder{
		OrderID:  fmt.Sprintf("order_%d", g.orders),
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	}, nil
}

func (g *stubGateway) VerifySignature(_, _, signature string) bool {
	return signature == g.signature
}

type stubDedup struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) IsDuplicate(_ context.Context, paymentID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seen[paymentID], nil
}

func (d *stubDedup) Mark(_ context.Context, paymentID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen[paymentID] = true
	return nil
}

package domain

import "testing"

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingPending, BookingBooked, true},
		{BookingBooked, BookingCollected, true},
		{BookingPending, BookingCollected, false},
		{BookingBooked, BookingPending, false},
		{BookingCollected, BookingPending, false},
		{BookingCollected, BookingBooked, false},
		{BookingPending, BookingPending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestBookingStatus_Valid(t *testing.T) {
	for _, s := range []BookingStatus{BookingPending, BookingBooked, BookingCollected} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if BookingStatus("cancelled").Valid() {
		t.Errorf("unknown status should not be valid")
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleUser, RolePartner, RoleAdmin} {
		if !r.Valid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if Role("superuser").Valid() {
		t.Errorf("unknown role should not be valid")
	}
}

package lorry

import (
	"testing"
	"time"
)

func TestStatus_CanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		// forward lifecycle
		{StatusAvailable, StatusAssigned, true},
		{StatusAssigned, StatusLoading, true},
		{StatusLoading, StatusSubmitted, true},
		{StatusSubmitted, StatusProcessed, true},
		{StatusProcessed, StatusSentToDealer, true},
		// backward edges
		{StatusAssigned, StatusAvailable, true},
		{StatusLoading, StatusAssigned, true},
		{StatusProcessed, StatusSubmitted, true},
		// illegal jumps
		{StatusAvailable, StatusLoading, false},
		{StatusAvailable, StatusSubmitted, false},
		{StatusAssigned, StatusSubmitted, false},
		{StatusLoading, StatusProcessed, false},
		{StatusSubmitted, StatusLoading, false},
		{StatusSubmitted, StatusSentToDealer, false},
		{StatusSentToDealer, StatusProcessed, false},
		{StatusSentToDealer, StatusAvailable, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.want {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestStatus_Terminal(t *testing.T) {
	for _, s := range []Status{StatusAvailable, StatusAssigned, StatusLoading, StatusSubmitted, StatusProcessed} {
		if s.Terminal() {
			t.Errorf("%s reported terminal", s)
		}
	}
	if !StatusSentToDealer.Terminal() {
		t.Error("SENT_TO_DEALER not reported terminal")
	}
}

func TestLorry_AllPriced(t *testing.T) {
	cases := []struct {
		deliveries, priced int
		want               bool
	}{
		{0, 0, false}, // empty run never satisfies the join
		{3, 2, false},
		{3, 3, true},
		{1, 1, true},
	}
	for _, tc := range cases {
		l := &Lorry{DeliveryCount: tc.deliveries, PricedCount: tc.priced}
		if got := l.AllPriced(); got != tc.want {
			t.Errorf("AllPriced(%d/%d) = %v, want %v", tc.priced, tc.deliveries, got, tc.want)
		}
	}
}

func TestLorry_SetStatus(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := &Lorry{Status: StatusAssigned}
	l.SetStatus(StatusLoading, at)
	if l.Status != StatusLoading {
		t.Fatalf("status = %s, want LOADING", l.Status)
	}
	if !l.StatusUpdatedAt.Equal(at) {
		t.Fatalf("status_updated_at = %s, want %s", l.StatusUpdatedAt, at)
	}
}

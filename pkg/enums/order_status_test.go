package enums

import "testing"

func TestOrderStatusNext(t *testing.T) {
	cases := []struct {
		from OrderStatus
		want OrderStatus
		ok   bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusConfirmed, OrderStatusPreparing, true},
		{OrderStatusPreparing, OrderStatusReady, true},
		{OrderStatusReady, OrderStatusCompleted, true},
		{OrderStatusCompleted, "", false},
		{OrderStatusCancelled, "", false},
		{OrderStatus("mystery"), "", false},
	}
	for _, tc := range cases {
		got, ok := tc.from.Next()
		if ok != tc.ok || got != tc.want {
			t.Errorf("Next(%q) = (%q, %v), want (%q, %v)", tc.from, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCustomerStepIndex(t *testing.T) {
	cases := []struct {
		status OrderStatus
		want   int
	}{
		{OrderStatusPending, 0},
		{OrderStatusConfirmed, 1},
		{OrderStatusPreparing, 1},
		{OrderStatusReady, 2},
		{OrderStatusCompleted, 3},
		{OrderStatus("mystery"), 0},
		{OrderStatusCancelled, 0},
	}
	for _, tc := range cases {
		if got := tc.status.CustomerStepIndex(); got != tc.want {
			t.Errorf("CustomerStepIndex(%q) = %d, want %d", tc.status, got, tc.want)
		}
	}
}

func TestCustomerStepsAreStable(t *testing.T) {
	steps := CustomerSteps()
	if len(steps) != 4 {
		t.Fatalf("got %d steps", len(steps))
	}
	steps[0] = OrderStatusCancelled
	if CustomerSteps()[0] != OrderStatusPending {
		t.Fatal("CustomerSteps must return a copy")
	}
}

func TestOrderStatusBadgeFallsBackToPending(t *testing.T) {
	if OrderStatus("mystery").Badge() != OrderStatusPending.Badge() {
		t.Fatal("unknown status should use the pending badge")
	}
	if OrderStatusCancelled.Badge() == OrderStatusPending.Badge() {
		t.Fatal("cancelled needs its own badge")
	}
}

func TestIsTerminal(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusCompleted, OrderStatusCancelled} {
		if !status.IsTerminal() {
			t.Errorf("%q should be terminal", status)
		}
	}
	for _, status := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusReady} {
		if status.IsTerminal() {
			t.Errorf("%q should not be terminal", status)
		}
	}
}

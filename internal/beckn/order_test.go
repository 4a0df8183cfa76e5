package beckn

import (
	"testing"

	"ondc-seller-adapter/internal/model"
)

func TestOrderState(t *testing.T) {
	cases := []struct {
		status string
		want   string
	}{
		{model.OrderStatusPending, "Pending"},
		{model.OrderStatusProcessing, "In-progress"},
		{model.OrderStatusCompleted, "Completed"},
		{model.OrderStatusCancelled, "Cancelled"},
		{"something-else", "Pending"},
	}
	for _, tc := range cases {
		if got := OrderState(tc.status); got != tc.want {
			t.Errorf("OrderState(%q) = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestPendingFulfillment(t *testing.T) {
	f := PendingFulfillment("ful-1")
	if f.ID != "ful-1" || f.Type != "Delivery" {
		t.Errorf("fulfillment = %+v", f)
	}
	if f.State == nil || f.State.Descriptor.Code != "Pending" {
		t.Errorf("expected Pending state, got %+v", f.State)
	}
}

func TestSigner_Deterministic(t *testing.T) {
	s := NewSigner("test-key")
	body := []byte(`{"context":{"action":"on_search"}}`)

	first := s.Sign(body)
	second := s.Sign(body)
	if first != second {
		t.Errorf("signatures differ for identical input: %q vs %q", first, second)
	}
	if len(first) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(first))
	}

	other := NewSigner("other-key").Sign(body)
	if other == first {
		t.Error("different keys produced the same signature")
	}
}

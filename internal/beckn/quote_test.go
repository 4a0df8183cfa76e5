package beckn

import (
	"errors"
	"testing"

	"ondc-seller-adapter/internal/model"
)

func selected(id, value string, count int) model.SelectedItem {
	item := model.SelectedItem{
		ID:    id,
		Price: model.Price{Currency: "INR", Value: value},
	}
	if count > 0 {
		item.Quantity = &model.SelectedQuantity{Count: count}
	}
	return item
}

func TestCalculateQuote_Scenario(t *testing.T) {
	// Two items at 100.00 and 50.00 with quantities 2 and 1.
	quote, err := CalculateQuote([]model.SelectedItem{
		selected("prod_1", "100.00", 2),
		selected("prod_2", "50.00", 1),
	})
	if err != nil {
		t.Fatalf("CalculateQuote error: %v", err)
	}

	if quote.Price.Value != "250.00" {
		t.Errorf("total = %q, want 250.00", quote.Price.Value)
	}
	if len(quote.Breakup) != 2 {
		t.Fatalf("expected 2 breakup entries, got %d", len(quote.Breakup))
	}
	if quote.Breakup[0].Title != "Base Price" || quote.Breakup[0].Price.Value != "250.00" {
		t.Errorf("base entry = %+v", quote.Breakup[0])
	}
	if quote.Breakup[1].Title != "Delivery Charges" || quote.Breakup[1].Price.Value != "0" {
		t.Errorf("delivery entry = %+v", quote.Breakup[1])
	}
}

func TestCalculateQuote_AbsentQuantityDefaultsToOne(t *testing.T) {
	quote, err := CalculateQuote([]model.SelectedItem{
		selected("prod_1", "75.50", 0), // no quantity block
	})
	if err != nil {
		t.Fatalf("CalculateQuote error: %v", err)
	}
	if quote.Price.Value != "75.50" {
		t.Errorf("total = %q, want 75.50", quote.Price.Value)
	}
}

func TestCalculateQuote_Linearity(t *testing.T) {
	base, err := CalculateQuote([]model.SelectedItem{
		selected("prod_1", "100.00", 2),
		selected("prod_2", "50.00", 1),
	})
	if err != nil {
		t.Fatalf("CalculateQuote error: %v", err)
	}

	doubled, err := CalculateQuote([]model.SelectedItem{
		selected("prod_1", "100.00", 4),
		selected("prod_2", "50.00", 2),
	})
	if err != nil {
		t.Fatalf("CalculateQuote error: %v", err)
	}

	if base.Breakup[0].Price.Value != "250.00" || doubled.Breakup[0].Price.Value != "500.00" {
		t.Errorf("base entries %q and %q, want 250.00 doubling to 500.00",
			base.Breakup[0].Price.Value, doubled.Breakup[0].Price.Value)
	}
	if doubled.Breakup[1].Price.Value != "0" {
		t.Errorf("delivery entry changed: %q", doubled.Breakup[1].Price.Value)
	}
}

func TestCalculateQuote_InvalidPrice(t *testing.T) {
	cases := []struct {
		name  string
		value string
	}{
		{"unparsable", "abc"},
		{"empty", ""},
		{"negative", "-5.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CalculateQuote([]model.SelectedItem{selected("prod_1", tc.value, 1)})
			if !errors.Is(err, ErrInvalidPrice) {
				t.Fatalf("expected ErrInvalidPrice for %q, got %v", tc.value, err)
			}
		})
	}
}

func TestCalculateQuote_EmptyItems(t *testing.T) {
	quote, err := CalculateQuote(nil)
	if err != nil {
		t.Fatalf("CalculateQuote error: %v", err)
	}
	if quote.Price.Value != "0.00" {
		t.Errorf("total = %q, want 0.00", quote.Price.Value)
	}
}

func TestCalculateQuote_RoundTripWithProjection(t *testing.T) {
	// Summing projected item prices reproduces the select-time total for
	// the same item set.
	provider := ProjectProvider(testStore(), testProducts())

	items := make([]model.SelectedItem, 0, len(provider.Items))
	for _, it := range provider.Items {
		items = append(items, model.SelectedItem{
			ID:       it.ID,
			Price:    model.Price{Currency: it.Price.Currency, Value: it.Price.Value},
			Quantity: &model.SelectedQuantity{Count: 1},
		})
	}

	quote, err := CalculateQuote(items)
	if err != nil {
		t.Fatalf("CalculateQuote error: %v", err)
	}
	if quote.Price.Value != "150.50" {
		t.Errorf("total = %q, want 150.50 (100.00 + 50.50)", quote.Price.Value)
	}
}

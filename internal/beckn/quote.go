package beckn

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"ondc-seller-adapter/internal/model"
)

// ErrInvalidPrice is returned when a line item's price value cannot be
// parsed as a non-negative decimal.
var ErrInvalidPrice = errors.New("beckn: invalid item price")

// CalculateQuote computes the price breakup for the selected line
// items: unit price times requested count (absent count defaults to 1)
// summed into a base-price entry, plus a zero delivery-charges entry.
// Delivery pricing is not modeled.
func CalculateQuote(items []model.SelectedItem) (model.Quote, error) {
	total := decimal.Zero
	for _, item := range items {
		price, err := decimal.NewFromString(item.Price.Value)
		if err != nil {
			return model.Quote{}, fmt.Errorf("%w: item %s value %q", ErrInvalidPrice, item.ID, item.Price.Value)
		}
		if price.IsNegative() {
			return model.Quote{}, fmt.Errorf("%w: item %s value %q is negative", ErrInvalidPrice, item.ID, item.Price.Value)
		}

		count := 1
		if item.Quantity != nil && item.Quantity.Count > 0 {
			count = item.Quantity.Count
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(count))))
	}

	value := total.StringFixed(2)
	return model.Quote{
		Price: model.Price{Currency: "INR", Value: value},
		Breakup: []model.BreakupEntry{
			{Title: "Base Price", Price: model.Price{Currency: "INR", Value: value}},
			{Title: "Delivery Charges", Price: model.Price{Currency: "INR", Value: "0"}},
		},
	}, nil
}

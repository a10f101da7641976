package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// MaxQuantity caps a single line. Adds beyond it saturate.
const MaxQuantity = math.MaxInt32

// LineItem pairs a plant snapshot with a positive quantity.
type LineItem struct {
	Plant    Plant `json:"plant"`
	Quantity int   `json:"quantity"`
}

// Subtotal is the unit price times the quantity. A missing price counts as zero.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.Plant.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Cart struct {
	Items      []LineItem `json:"items"`
	TotalItems int        `json:"totalItems"`
}

// Summary holds the money totals shown next to a cart.
type Summary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Summarize prices the items. Shipping is charged only when the subtotal is positive.
func Summarize(items []LineItem, flatShipping decimal.Decimal) Summary {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal())
	}
	shipping := decimal.Zero
	if subtotal.IsPositive() {
		shipping = flatShipping
	}
	return Summary{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}

// CountItems sums line quantities.
func CountItems(items []LineItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

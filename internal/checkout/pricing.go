package checkout

import (
	"nedpos/internal/model"

	"github.com/shopspring/decimal"
)

// Totals is the priced view of a cart.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	// DiscountAmount is what the discount evaluates to, possibly above Subtotal.
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	// AppliedDiscount is the part of DiscountAmount actually taken off.
	AppliedDiscount decimal.Decimal `json:"applied_discount"`
	Tax             decimal.Decimal `json:"tax"`
	Total           decimal.Decimal `json:"total"`
}

// Subtotal is Σ price × quantity over items.
func Subtotal(items []model.SaleItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// Compute prices items with discount. Tax is always zero and the total never
// goes negative. A nil discount means none.
func Compute(items []model.SaleItem, d Discount) Totals {
	if d == nil {
		d = NoDiscount{}
	}
	sub := Subtotal(items)
	disc := d.Amount(sub)

	total := sub.Sub(disc)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return Totals{
		Subtotal:        sub,
		DiscountAmount:  disc,
		AppliedDiscount: sub.Sub(total),
		Tax:             decimal.Zero,
		Total:           total,
	}
}

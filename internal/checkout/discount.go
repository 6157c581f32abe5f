package checkout

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Discount kinds accepted from clients.
const (
	DiscountFixed   = "FIXED"
	DiscountPercent = "PERCENT"
)

var hundred = decimal.NewFromInt(100)

// Discount computes the amount taken off a subtotal.
type Discount interface {
	Amount(subtotal decimal.Decimal) decimal.Decimal
}

// Fixed takes a flat amount off the subtotal.
type Fixed struct{ Value decimal.Decimal }

func (d Fixed) Amount(decimal.Decimal) decimal.Decimal { return d.Value }

// Percent takes Pct percent of the subtotal. Values above 100 are allowed and
// yield an amount larger than the subtotal; the total clamps at zero.
type Percent struct{ Pct decimal.Decimal }

func (d Percent) Amount(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(d.Pct).Div(hundred)
}

// NoDiscount is the zero discount.
type NoDiscount struct{}

func (NoDiscount) Amount(decimal.Decimal) decimal.Decimal { return decimal.Zero }

// ParseDiscount builds a Discount from the raw kind and value a cashier typed.
// Empty, unparseable or negative values mean no discount.
func ParseDiscount(kind, raw string) Discount {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || v.IsNegative() || v.IsZero() {
		return NoDiscount{}
	}
	switch strings.ToUpper(strings.TrimSpace(kind)) {
	case DiscountFixed:
		return Fixed{Value: v}
	case DiscountPercent:
		return Percent{Pct: v}
	}
	return NoDiscount{}
}

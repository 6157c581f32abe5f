package dto

import (
	"bytes"
	"encoding/json"

	"nedpos/internal/checkout"
	"nedpos/internal/model"

	"github.com/shopspring/decimal"
)

// ─── Cart ────────────────────────────────────────────────────────────────────

type AddCartItemRequest struct {
	ProductID string  `json:"product_id" validate:"required,uuid"`
	VariantID *string `json:"variant_id" validate:"omitempty,uuid"`
	Quantity  int     `json:"quantity"   validate:"omitempty,min=1"`
}

type RentalDaysRequest struct {
	VariantID *string `json:"variant_id" validate:"omitempty,uuid"`
	Days      int     `json:"days"       validate:"required,min=1"`
}

// DiscountInput is the raw discount the cashier typed. Invalid values count as zero.
type DiscountInput struct {
	Type  string        `json:"type"  form:"discount_type"`
	Value DiscountValue `json:"value" form:"discount_value"`
}

// DiscountValue accepts "10", 10 or 10.5 from JSON. Anything else decodes
// to an empty value, which prices as no discount.
type DiscountValue string

func (v *DiscountValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = DiscountValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*v = DiscountValue(n.String())
		return nil
	}
	*v = ""
	return nil
}

type CheckoutRequest struct {
	PaymentMethod model.PaymentMethod `json:"payment_method" validate:"required,oneof=CASH CARD EWALLET"`
	CustomerID    *string             `json:"customer_id"    validate:"omitempty,uuid"`
	Discount      DiscountInput       `json:"discount"`
}

type CartResponse struct {
	Items  []model.SaleItem `json:"items"`
	Totals checkout.Totals  `json:"totals"`
}

// ─── Sales ───────────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	ProductID  string  `json:"product_id" validate:"required,uuid"`
	VariantID  *string `json:"variant_id" validate:"omitempty,uuid"`
	Quantity   int     `json:"quantity"   validate:"required,min=1"`
	RentalDays *int    `json:"rental_days" validate:"omitempty,min=1"`
}

// CreateSaleRequest commits an explicit list of items without a server-side cart.
// Prices are always taken from the catalog.
type CreateSaleRequest struct {
	Items         []SaleItemRequest   `json:"items"          validate:"required,min=1,dive"`
	PaymentMethod model.PaymentMethod `json:"payment_method" validate:"required,oneof=CASH CARD EWALLET"`
	CustomerID    *string             `json:"customer_id"    validate:"omitempty,uuid"`
	Discount      DiscountInput       `json:"discount"`
}

type SaleFilter struct {
	Search string `form:"search"` // ticket number, cashier or customer name
	From   string `form:"from"`   // YYYY-MM-DD
	To     string `form:"to"`     // YYYY-MM-DD, inclusive
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SaleListResponse struct {
	Data  []model.Sale `json:"data"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

type SalesSummaryResponse struct {
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

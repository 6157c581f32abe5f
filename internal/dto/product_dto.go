package dto

import (
	"nedpos/internal/model"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type VariantInput struct {
	ID       *string `json:"id"       validate:"omitempty,uuid"`
	Color    string  `json:"color"    validate:"max=40"`
	Size     string  `json:"size"     validate:"max=20"`
	Material string  `json:"material" validate:"max=40"`
	Stock    int     `json:"stock"    validate:"min=0"`
}

// ProductRequest is used for both create and full update. When Variants is
// non-empty, Stock is ignored and recomputed from them.
type ProductRequest struct {
	Name              string                `json:"name"                 validate:"required,min=2,max=120"`
	Barcode           string                `json:"barcode"              validate:"required,min=3,max=32"`
	Category          string                `json:"category"             validate:"max=60"`
	Brand             string                `json:"brand"                validate:"max=60"`
	Stock             int                   `json:"stock"                validate:"min=0"`
	ReorderPoint      int                   `json:"reorder_point"        validate:"min=0"`
	CostPrice         decimal.Decimal       `json:"cost_price"           validate:"min=0"`
	SellingPrice      *decimal.Decimal      `json:"selling_price"`
	RentalPricePerDay *decimal.Decimal      `json:"rental_price_per_day"`
	TransactionType   model.TransactionType `json:"transaction_type"     validate:"required,oneof=SALE RENTAL SERVICE"`
	Variants          []VariantInput        `json:"variants"             validate:"omitempty,dive"`
}

type AdjustStockRequest struct {
	VariantID *string `json:"variant_id" validate:"omitempty,uuid"`
	Delta     int     `json:"delta"      validate:"required"`
	Reason    string  `json:"reason"     validate:"required,min=3"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Search   string `form:"search"` // name or barcode substring
	Category string `form:"category"`
	LowStock bool   `form:"low_stock"`
	Page     int    `form:"page,default=1"  validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductListResponse struct {
	Data       []model.Product `json:"data"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// PriceCheckResponse is returned by the public price check endpoint (no auth required).
type PriceCheckResponse struct {
	Name              string                `json:"name"`
	Brand             string                `json:"brand"`
	Category          string                `json:"category"`
	TransactionType   model.TransactionType `json:"transaction_type"`
	SellingPrice      *decimal.Decimal      `json:"selling_price"`
	RentalPricePerDay *decimal.Decimal      `json:"rental_price_per_day"`
	InStock           bool                  `json:"in_stock"`
}

type PriceHistoryFilter struct {
	Page  int `form:"page,default=1"   validate:"min=1"`
	Limit int `form:"limit,default=50" validate:"min=1,max=200"`
}

type PriceChangeListResponse struct {
	Data  []model.PriceChange `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PriceChange records one edit of a product's prices. Rows are append-only.
type PriceChange struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID          uuid.UUID        `gorm:"type:uuid;not null;index" json:"product_id"`
	CostBefore         decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"cost_before"`
	CostAfter          decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"cost_after"`
	SellingBefore      *decimal.Decimal `gorm:"type:decimal(12,2)" json:"selling_before,omitempty"`
	SellingAfter       *decimal.Decimal `gorm:"type:decimal(12,2)" json:"selling_after,omitempty"`
	RentalPerDayBefore *decimal.Decimal `gorm:"type:decimal(12,2)" json:"rental_per_day_before,omitempty"`
	RentalPerDayAfter  *decimal.Decimal `gorm:"type:decimal(12,2)" json:"rental_per_day_after,omitempty"`
	CreatedAt          time.Time        `gorm:"index" json:"created_at"`
}

func (c *PriceChange) BeforeCreate(*gorm.DB) error {
	assignID(&c.ID)
	return nil
}

// DiffPrices returns the change from before to after, or nil when no price moved.
func DiffPrices(before, after *Product) *PriceChange {
	if before.CostPrice.Equal(after.CostPrice) &&
		sameAmount(before.SellingPrice, after.SellingPrice) &&
		sameAmount(before.RentalPricePerDay, after.RentalPricePerDay) {
		return nil
	}
	return &PriceChange{
		ProductID:          after.ID,
		CostBefore:         before.CostPrice,
		CostAfter:          after.CostPrice,
		SellingBefore:      before.SellingPrice,
		SellingAfter:       after.SellingPrice,
		RentalPerDayBefore: before.RentalPricePerDay,
		RentalPerDayAfter:  after.RentalPricePerDay,
	}
}

func sameAmount(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MovementSale         = "sale"
	MovementManualAdjust = "manual_adjust"
)

// StockMovement records every stock change on a product or variant.
type StockMovement struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id"`
	VariantID   *uuid.UUID `gorm:"type:uuid" json:"variant_id,omitempty"`
	Kind        string     `gorm:"type:varchar(20);not null" json:"kind"`
	Quantity    int        `gorm:"not null" json:"quantity"` // positive = in, negative = out
	StockBefore int        `gorm:"not null" json:"stock_before"`
	StockAfter  int        `gorm:"not null" json:"stock_after"`
	Reason      string     `json:"reason"`
	ReferenceID *uuid.UUID `gorm:"type:uuid" json:"reference_id,omitempty"` // sale id when applicable
	CreatedAt   time.Time  `json:"created_at"`
}

func (m *StockMovement) BeforeCreate(*gorm.DB) error {
	assignID(&m.ID)
	return nil
}

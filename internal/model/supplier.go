package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Supplier is a vendor the store buys stock from.
type Supplier struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"index;not null" json:"name"`
	ContactPerson string    `gorm:"not null;default:''" json:"contact_person"`
	Phone         string    `gorm:"not null;default:''" json:"phone"`
	Email         *string   `json:"email,omitempty"`
	Address       *string   `json:"address,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (s *Supplier) BeforeCreate(*gorm.DB) error {
	assignID(&s.ID)
	return nil
}

// Purchase records goods bought from a supplier. It does not move stock.
type Purchase struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SupplierID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"supplier_id"`
	SupplierName string          `gorm:"not null" json:"supplier_name"`
	TotalCost    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_cost"`
	Date         time.Time       `gorm:"index;not null" json:"date"`
	Notes        string          `gorm:"not null;default:''" json:"notes"`

	Items []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items"`
}

func (p *Purchase) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	return nil
}

// PurchaseItem is one received product line.
type PurchaseItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"-"`
	PurchaseID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	ProductName string          `gorm:"not null" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	CostPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"cost_price"`
}

func (i *PurchaseItem) BeforeCreate(*gorm.DB) error {
	assignID(&i.ID)
	return nil
}

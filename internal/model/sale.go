package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentMethod is how the customer settled a sale.
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "CASH"
	PaymentCard    PaymentMethod = "CARD"
	PaymentEWallet PaymentMethod = "EWALLET"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentEWallet:
		return true
	}
	return false
}

// Sale is a finalized, immutable transaction.
// Discount holds the amount actually applied, so Total == Subtotal - Discount.
// Tax is always zero.
type Sale struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TicketNumber  int64           `gorm:"uniqueIndex;not null" json:"ticket_number"`
	CustomerID    *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName  *string         `json:"customer_name,omitempty"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	Tax           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"tax"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(10);not null" json:"payment_method"`
	Date          time.Time       `gorm:"index;not null" json:"date"`
	Cashier       string          `gorm:"index;not null" json:"cashier"`

	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items"`
}

func (s *Sale) BeforeCreate(*gorm.DB) error {
	assignID(&s.ID)
	return nil
}

// ItemCount is the total number of units across all lines.
func (s *Sale) ItemCount() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}

// SaleItem is one cart line frozen at commit time. ProductName is a snapshot.
type SaleItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"-"`
	SaleID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Position        int             `gorm:"not null" json:"-"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	VariantID       *uuid.UUID      `gorm:"type:uuid" json:"variant_id,omitempty"`
	ProductName     string          `gorm:"not null" json:"product_name"`
	VariantLabel    string          `gorm:"not null;default:''" json:"variant_label,omitempty"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	TransactionType TransactionType `gorm:"type:varchar(10);not null" json:"transaction_type"`
	RentalDays      *int            `json:"rental_days,omitempty"`
}

func (i *SaleItem) BeforeCreate(*gorm.DB) error {
	assignID(&i.ID)
	return nil
}

// LineTotal is price times quantity. Rental days are informational only.
func (i SaleItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SameLine reports whether two items refer to the same product and variant.
func (i SaleItem) SameLine(productID uuid.UUID, variantID *uuid.UUID) bool {
	if i.ProductID != productID {
		return false
	}
	if i.VariantID == nil || variantID == nil {
		return i.VariantID == nil && variantID == nil
	}
	return *i.VariantID == *variantID
}

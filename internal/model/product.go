package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType selects how a product is priced and whether stock applies.
type TransactionType string

const (
	TransactionSale    TransactionType = "SALE"
	TransactionRental  TransactionType = "RENTAL"
	TransactionService TransactionType = "SERVICE"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionSale, TransactionRental, TransactionService:
		return true
	}
	return false
}

// UnlimitedStock is the persisted stock value of SERVICE products.
const UnlimitedStock = -1

// Product is a sellable, rentable or service catalog entry.
// When Variants is non-empty, Stock always equals the sum of the variant stocks.
type Product struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string           `gorm:"index;not null" json:"name"`
	Barcode           string           `gorm:"uniqueIndex;not null" json:"barcode"`
	Category          string           `gorm:"index;not null;default:''" json:"category"`
	Brand             string           `gorm:"not null;default:''" json:"brand"`
	Stock             int              `gorm:"not null;default:0" json:"stock"`
	ReorderPoint      int              `gorm:"not null;default:0" json:"reorder_point"`
	CostPrice         decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0" json:"cost_price"`
	SellingPrice      *decimal.Decimal `gorm:"type:decimal(12,2)" json:"selling_price,omitempty"`
	RentalPricePerDay *decimal.Decimal `gorm:"type:decimal(12,2)" json:"rental_price_per_day,omitempty"`
	TransactionType   TransactionType  `gorm:"type:varchar(10);not null;default:'SALE'" json:"transaction_type"`
	Active            bool             `gorm:"not null;default:true" json:"active"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`

	Variants []Variant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	return nil
}

// IsService reports whether stock checks are skipped for this product.
func (p *Product) IsService() bool { return p.TransactionType == TransactionService }

// UnitPrice is the per-unit (or per-day for rentals) price a new cart line takes.
// A missing price is zero.
func (p *Product) UnitPrice() decimal.Decimal {
	var price *decimal.Decimal
	if p.TransactionType == TransactionRental {
		price = p.RentalPricePerDay
	} else {
		price = p.SellingPrice
	}
	if price == nil {
		return decimal.Zero
	}
	return *price
}

// IsLowStock reports whether stock has fallen to or below the reorder point.
func (p *Product) IsLowStock() bool {
	return !p.IsService() && p.Stock <= p.ReorderPoint
}

// SyncStock enforces the variant sum invariant. SERVICE products keep the
// unlimited sentinel regardless of variants.
func (p *Product) SyncStock() {
	if p.IsService() {
		p.Stock = UnlimitedStock
		return
	}
	if len(p.Variants) == 0 {
		return
	}
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	p.Stock = total
}

// FindVariant returns the variant with the given id, or nil.
func (p *Product) FindVariant(id uuid.UUID) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

// Variant is a color/size/material combination of a product with its own stock.
type Variant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Color     string    `gorm:"not null;default:''" json:"color"`
	Size      string    `gorm:"not null;default:''" json:"size"`
	Material  string    `gorm:"not null;default:''" json:"material"`
	Stock     int       `gorm:"not null;default:0" json:"stock"`
}

func (v *Variant) BeforeCreate(*gorm.DB) error {
	assignID(&v.ID)
	return nil
}

// Label is the human readable variant description used on receipts.
func (v *Variant) Label() string {
	out := ""
	for _, part := range []string{v.Color, v.Size, v.Material} {
		if part == "" {
			continue
		}
		if out != "" {
			out += " / "
		}
		out += part
	}
	return out
}

func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// Package checkout holds the in-memory side of a sale: the cart a cashier
// builds and the pricing rules applied to it. Nothing here touches storage.
package checkout

import (
	"errors"

	"nedpos/internal/model"

	"github.com/google/uuid"
)

var (
	ErrOutOfStock       = errors.New("product is out of stock")
	ErrUnknownVariant   = errors.New("variant does not belong to product")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrLineNotFound     = errors.New("item is not in the cart")
	ErrNotRental        = errors.New("rental days apply only to rental items")
	ErrInvalidRentalDay = errors.New("rental days must be at least 1")
)

// Cart is the ordered list of lines a cashier is assembling. Lines keep the
// order in which they were first added. The zero value is an empty cart.
type Cart struct {
	Lines []model.SaleItem `json:"items"`
}

// Add puts one unit of product into the cart.
func (c *Cart) Add(p *model.Product, variantID *uuid.UUID) error {
	return c.AddQuantity(p, variantID, 1)
}

// AddQuantity puts qty units of product into the cart. A product already in
// the cart with the same variant has its quantity increased; its price stays
// what it was when the line was created. Persisted stock is not consulted
// beyond the out-of-stock check and never modified.
func (c *Cart) AddQuantity(p *model.Product, variantID *uuid.UUID, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if !p.IsService() && p.Stock <= 0 {
		return ErrOutOfStock
	}

	label := ""
	if variantID != nil {
		v := p.FindVariant(*variantID)
		if v == nil {
			return ErrUnknownVariant
		}
		if !p.IsService() && v.Stock <= 0 {
			return ErrOutOfStock
		}
		label = v.Label()
	}

	for i := range c.Lines {
		if c.Lines[i].SameLine(p.ID, variantID) {
			c.Lines[i].Quantity += qty
			return nil
		}
	}

	line := model.SaleItem{
		ProductID:       p.ID,
		ProductName:     p.Name,
		VariantLabel:    label,
		Quantity:        qty,
		Price:           p.UnitPrice(),
		TransactionType: p.TransactionType,
	}
	if variantID != nil {
		id := *variantID
		line.VariantID = &id
	}
	if p.TransactionType == model.TransactionRental {
		days := 1
		line.RentalDays = &days
	}
	c.Lines = append(c.Lines, line)
	return nil
}

// Remove drops the line for product/variant.
func (c *Cart) Remove(productID uuid.UUID, variantID *uuid.UUID) error {
	for i := range c.Lines {
		if c.Lines[i].SameLine(productID, variantID) {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// SetRentalDays records how many days a rental line is out for. The value is
// informational; pricing stays price × quantity.
func (c *Cart) SetRentalDays(productID uuid.UUID, variantID *uuid.UUID, days int) error {
	if days < 1 {
		return ErrInvalidRentalDay
	}
	for i := range c.Lines {
		if !c.Lines[i].SameLine(productID, variantID) {
			continue
		}
		if c.Lines[i].TransactionType != model.TransactionRental {
			return ErrNotRental
		}
		c.Lines[i].RentalDays = &days
		return nil
	}
	return ErrLineNotFound
}

func (c *Cart) Clear() { c.Lines = nil }

func (c *Cart) IsEmpty() bool { return len(c.Lines) == 0 }

// Items returns a copy of the lines, safe to hand to the committer.
func (c *Cart) Items() []model.SaleItem {
	out := make([]model.SaleItem, len(c.Lines))
	copy(out, c.Lines)
	return out
}

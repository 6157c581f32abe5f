package dto

import "github.com/shopspring/decimal"

type SupplierRequest struct {
	Name          string  `json:"name"           validate:"required,min=2"`
	ContactPerson string  `json:"contact_person"`
	Phone         string  `json:"phone"`
	Email         *string `json:"email"          validate:"omitempty,email"`
	Address       *string `json:"address"`
}

type PurchaseItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity"   validate:"required,min=1"`
	CostPrice decimal.Decimal `json:"cost_price" validate:"min=0"`
}

type CreatePurchaseRequest struct {
	SupplierID string                `json:"supplier_id" validate:"required,uuid"`
	Items      []PurchaseItemRequest `json:"items"       validate:"required,min=1,dive"`
	Notes      string                `json:"notes"`
}

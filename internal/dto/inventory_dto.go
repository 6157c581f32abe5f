package dto

import (
	"nedpos/internal/model"
)

type LowStockResponse struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	Barcode      string `json:"barcode"`
	Stock        int    `json:"stock"`
	ReorderPoint int    `json:"reorder_point"`
}

type StockMovementFilter struct {
	ProductID string `form:"product_id" validate:"omitempty,uuid"`
	Kind      string `form:"kind"`
	Page      int    `form:"page,default=1"    validate:"min=1"`
	Limit     int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type StockMovementListResponse struct {
	Data  []model.StockMovement `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

package dto

import (
	"nedpos/internal/model"

	"github.com/shopspring/decimal"
)

type TopProduct struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type DaySales struct {
	Date  string          `json:"date"` // YYYY-MM-DD
	Total decimal.Decimal `json:"total"`
}

type DashboardResponse struct {
	DailySales     decimal.Decimal `json:"daily_sales"`
	ItemsSoldToday int             `json:"items_sold_today"`
	PendingRepairs int64           `json:"pending_repairs"`
	LowStockCount  int64           `json:"low_stock_count"`
	TopSelling     []TopProduct    `json:"top_selling"`
	SalesByDay     []DaySales      `json:"sales_by_day"`
}

type CustomerAnalysis struct {
	Customer   model.Customer  `json:"customer"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	VisitCount int             `json:"visit_count"`
	LastVisit  *string         `json:"last_visit"`
}

package repository

import (
	"context"
	"time"

	"nedpos/internal/dto"
	"nedpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleRepository is the append-only store of committed sales.
// List results are always most recent first.
type SaleRepository interface {
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	NextTicketNumber(ctx context.Context, tx *gorm.DB) (int64, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	Summary(ctx context.Context, filter dto.SaleFilter) (int64, decimal.Decimal, error)
	// ListBetween returns every sale with from <= date < to, items included.
	ListBetween(ctx context.Context, from, to time.Time) ([]model.Sale, error)
	ListByCustomers(ctx context.Context) ([]model.Sale, error)
	// TopProducts ranks product names by revenue across all sales.
	TopProducts(ctx context.Context, limit int) ([]dto.TopProduct, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := preloadItems(r.db.WithContext(ctx)).Where("id = ?", id).First(&s).Error
	return &s, err
}

func (r *saleRepo) NextTicketNumber(ctx context.Context, tx *gorm.DB) (int64, error) {
	var num int64
	if tx.Dialector.Name() == "sqlite" {
		// SQLite has no sequences; the enclosing transaction serializes writers.
		err := tx.WithContext(ctx).Model(&model.Sale{}).
			Select("COALESCE(MAX(ticket_number), 0) + 1").Scan(&num).Error
		return num, err
	}
	err := tx.WithContext(ctx).Raw("SELECT nextval('sales_ticket_number_seq')").Scan(&num).Error
	return num, err
}

func (r *saleRepo) filtered(ctx context.Context, filter dto.SaleFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Sale{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("(CAST(ticket_number AS TEXT) LIKE ? OR LOWER(cashier) LIKE LOWER(?) OR LOWER(COALESCE(customer_name, '')) LIKE LOWER(?))",
			like, like, like)
	}
	if from, err := time.ParseInLocation("2006-01-02", filter.From, time.Local); err == nil {
		q = q.Where("date >= ?", from)
	}
	if to, err := time.ParseInLocation("2006-01-02", filter.To, time.Local); err == nil {
		q = q.Where("date < ?", to.AddDate(0, 0, 1))
	}
	return q
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.filtered(ctx, filter)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(filter.Page, filter.Limit, 50)
	err := preloadItems(q).
		Order("ticket_number DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) Summary(ctx context.Context, filter dto.SaleFilter) (int64, decimal.Decimal, error) {
	var row struct {
		Count int64
		Total decimal.Decimal
	}
	err := r.filtered(ctx, filter).
		Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS total").
		Scan(&row).Error
	return row.Count, row.Total, err
}

func (r *saleRepo) ListBetween(ctx context.Context, from, to time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := preloadItems(r.db.WithContext(ctx)).
		Where("date >= ? AND date < ?", from, to).
		Order("ticket_number DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ListByCustomers(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Where("customer_id IS NOT NULL").
		Order("ticket_number DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) TopProducts(ctx context.Context, limit int) ([]dto.TopProduct, error) {
	var out []dto.TopProduct
	err := r.db.WithContext(ctx).Model(&model.SaleItem{}).
		Select("product_name AS name, SUM(quantity) AS quantity, SUM(price * quantity) AS revenue").
		Group("product_name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

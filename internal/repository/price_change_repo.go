package repository

import (
	"context"

	"nedpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PriceChangeRepository interface {
	Create(ctx context.Context, c *model.PriceChange) error
	// ListByProduct returns one page of a product's price changes, newest first.
	ListByProduct(ctx context.Context, productID uuid.UUID, page, limit int) ([]model.PriceChange, int64, error)
}

type priceChangeRepo struct{ db *gorm.DB }

func NewPriceChangeRepository(db *gorm.DB) PriceChangeRepository { return &priceChangeRepo{db: db} }

func (r *priceChangeRepo) Create(ctx context.Context, c *model.PriceChange) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *priceChangeRepo) ListByProduct(ctx context.Context, productID uuid.UUID, page, limit int) ([]model.PriceChange, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.PriceChange{}).Where("product_id = ?", productID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit = normalizePage(page, limit, 50)
	var rows []model.PriceChange
	err := q.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&rows).Error
	return rows, total, err
}

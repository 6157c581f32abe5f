package repository

import (
	"context"

	"nedpos/internal/dto"
	"nedpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for the catalog.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	// Update saves the product and replaces its variant set.
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountLowStock(ctx context.Context) (int64, error)

	// Used inside transactions: callers must pass the tx instance
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	SetStockTx(tx *gorm.DB, id uuid.UUID, stock int) error
	SetVariantStockTx(tx *gorm.DB, variantID uuid.UUID, stock int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) DB() *gorm.DB { return r.db }

func preloadVariants(db *gorm.DB) *gorm.DB {
	return db.Preload("Variants", func(db *gorm.DB) *gorm.DB {
		return db.Order("color ASC, size ASC")
	})
}

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return r.FindByIDTx(r.db.WithContext(ctx), id)
}

func (r *productRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := preloadVariants(tx).Where("id = ?", id).First(&p).Error
	return &p, err
}

func (r *productRepo) FindByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	var p model.Product
	err := preloadVariants(r.db.WithContext(ctx)).
		Where("barcode = ? AND active = ?", barcode, true).First(&p).Error
	return &p, err
}

func (r *productRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := preloadVariants(r.db.WithContext(ctx)).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{}).Where("active = ?", true)
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("(LOWER(name) LIKE LOWER(?) OR barcode LIKE ?)", like, like)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.LowStock {
		q = q.Where("transaction_type <> ? AND stock <= reorder_point", model.TransactionService)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(filter.Page, filter.Limit, 50)
	err := preloadVariants(q).Order("name ASC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keep := make([]uuid.UUID, 0, len(p.Variants))
		for i := range p.Variants {
			p.Variants[i].ProductID = p.ID
			if p.Variants[i].ID != uuid.Nil {
				keep = append(keep, p.Variants[i].ID)
			}
		}
		del := tx.Where("product_id = ?", p.ID)
		if len(keep) > 0 {
			del = del.Where("id NOT IN ?", keep)
		}
		if err := del.Delete(&model.Variant{}).Error; err != nil {
			return err
		}
		for i := range p.Variants {
			if err := tx.Save(&p.Variants[i]).Error; err != nil {
				return err
			}
		}
		return tx.Omit("Variants").Save(p).Error
	})
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.Variant{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Product{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *productRepo) CountLowStock(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("active = ? AND transaction_type <> ? AND stock <= reorder_point", true, model.TransactionService).
		Count(&n).Error
	return n, err
}

func (r *productRepo) SetStockTx(tx *gorm.DB, id uuid.UUID, stock int) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).Update("stock", stock).Error
}

func (r *productRepo) SetVariantStockTx(tx *gorm.DB, variantID uuid.UUID, stock int) error {
	return tx.Model(&model.Variant{}).Where("id = ?", variantID).Update("stock", stock).Error
}

// normalizePage clamps pagination input to sane bounds.
func normalizePage(page, limit, def int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = def
	}
	return page, limit
}

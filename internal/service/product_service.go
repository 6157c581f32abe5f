package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"nedpos/internal/dto"
	"nedpos/internal/infra"
	"nedpos/internal/model"
	"nedpos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	priceCachePrefix = "price:"
	priceCacheTTL    = 4 * time.Hour
)

// ProductService defines the business logic contract for the catalog.
type ProductService interface {
	Create(ctx context.Context, req dto.ProductRequest) (*model.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.ProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// PriceCheck is the read-only lookup behind the public price terminal.
	PriceCheck(ctx context.Context, barcode string) (*dto.PriceCheckResponse, error)
	PriceHistory(ctx context.Context, id uuid.UUID, page, limit int) (*dto.PriceChangeListResponse, error)
}

type productService struct {
	repo    repository.ProductRepository
	history repository.PriceChangeRepository
	cache   *infra.JSONCache
}

// NewProductService builds the catalog service. rdb may be nil, in which case
// price checks always hit the database. history may be nil to skip price
// change tracking.
func NewProductService(repo repository.ProductRepository, history repository.PriceChangeRepository, rdb *redis.Client) ProductService {
	return &productService{repo: repo, history: history, cache: infra.NewJSONCache(rdb, priceCachePrefix, priceCacheTTL)}
}

func (s *productService) Create(ctx context.Context, req dto.ProductRequest) (*model.Product, error) {
	if _, err := s.repo.FindByBarcode(ctx, req.Barcode); err == nil {
		return nil, ErrDuplicateBarcode
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p := &model.Product{Active: true}
	applyProductRequest(p, req)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	return p, nil
}

func (s *productService) GetByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	p, err := s.repo.FindByBarcode(ctx, strings.TrimSpace(barcode))
	if err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	return p, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 50
	}
	return &dto.ProductListResponse{
		Data:       products,
		Total:      total,
		Page:       max(filter.Page, 1),
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.ProductRequest) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	oldBarcode := p.Barcode
	if req.Barcode != oldBarcode {
		if other, err := s.repo.FindByBarcode(ctx, req.Barcode); err == nil && other.ID != id {
			return nil, ErrDuplicateBarcode
		}
	}

	before := *p
	applyProductRequest(p, req)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidatePrice(ctx, oldBarcode, p.Barcode)

	if change := model.DiffPrices(&before, p); change != nil && s.history != nil {
		if err := s.history.Create(ctx, change); err != nil {
			log.Warn().Err(err).Str("product_id", p.ID.String()).Msg("price change not recorded")
		}
	}
	return p, nil
}

func (s *productService) PriceHistory(ctx context.Context, id uuid.UUID, page, limit int) (*dto.PriceChangeListResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	resp := &dto.PriceChangeListResponse{Data: []model.PriceChange{}, Page: max(page, 1), Limit: limit}
	if s.history == nil {
		return resp, nil
	}
	rows, total, err := s.history.ListByProduct(ctx, id, page, limit)
	if err != nil {
		return nil, err
	}
	resp.Data = rows
	resp.Total = total
	return resp, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err, ErrProductNotFound)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, ErrProductNotFound)
	}
	s.invalidatePrice(ctx, p.Barcode)
	return nil
}

func (s *productService) PriceCheck(ctx context.Context, barcode string) (*dto.PriceCheckResponse, error) {
	barcode = strings.TrimSpace(barcode)

	var resp dto.PriceCheckResponse
	if hit, err := s.cache.Get(ctx, barcode, &resp); err == nil && hit {
		return &resp, nil
	} else if err != nil {
		log.Warn().Err(err).Str("barcode", barcode).Msg("price cache read failed")
	}

	p, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	resp = dto.PriceCheckResponse{
		Name:              p.Name,
		Brand:             p.Brand,
		Category:          p.Category,
		TransactionType:   p.TransactionType,
		SellingPrice:      p.SellingPrice,
		RentalPricePerDay: p.RentalPricePerDay,
		InStock:           p.IsService() || p.Stock > 0,
	}
	if err := s.cache.Set(ctx, barcode, resp); err != nil {
		log.Warn().Err(err).Str("barcode", barcode).Msg("price cache write failed")
	}
	return &resp, nil
}

func (s *productService) invalidatePrice(ctx context.Context, barcodes ...string) {
	if err := s.cache.Delete(ctx, barcodes...); err != nil {
		log.Warn().Err(err).Strs("barcodes", barcodes).Msg("price cache invalidation failed")
	}
}

// applyProductRequest copies req onto p and restores the stock invariants:
// services carry the unlimited sentinel and variant stock sums into the product.
func applyProductRequest(p *model.Product, req dto.ProductRequest) {
	p.Name = strings.TrimSpace(req.Name)
	p.Barcode = strings.TrimSpace(req.Barcode)
	p.Category = strings.TrimSpace(req.Category)
	p.Brand = strings.TrimSpace(req.Brand)
	p.ReorderPoint = req.ReorderPoint
	p.CostPrice = req.CostPrice
	p.SellingPrice = req.SellingPrice
	p.RentalPricePerDay = req.RentalPricePerDay
	p.TransactionType = req.TransactionType
	p.Stock = req.Stock

	variants := make([]model.Variant, 0, len(req.Variants))
	for _, in := range req.Variants {
		v := model.Variant{
			ProductID: p.ID,
			Color:     strings.TrimSpace(in.Color),
			Size:      strings.TrimSpace(in.Size),
			Material:  strings.TrimSpace(in.Material),
			Stock:     in.Stock,
		}
		if in.ID != nil {
			if id, err := uuid.Parse(*in.ID); err == nil && p.FindVariant(id) != nil {
				v.ID = id
			}
		}
		variants = append(variants, v)
	}
	p.Variants = variants
	p.SyncStock()
}

package service

import (
	"context"
	"errors"
	"fmt"

	"nedpos/internal/dto"
	"nedpos/internal/i18n"
	"nedpos/internal/infra"
	"nedpos/internal/model"
	"nedpos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// LowStockAlert is raised when a stock change leaves a product at or below
// its reorder point.
type LowStockAlert struct {
	ProductID    uuid.UUID
	ProductName  string
	Stock        int
	ReorderPoint int
}

// InventoryService owns every write to persisted stock.
type InventoryService interface {
	// ApplyStockDelta subtracts the sold quantities of sale inside tx.
	// Stock never goes below zero and SERVICE lines are skipped.
	ApplyStockDelta(ctx context.Context, tx *gorm.DB, sale *model.Sale) ([]LowStockAlert, error)
	AdjustStock(ctx context.Context, productID uuid.UUID, req dto.AdjustStockRequest) (*model.Product, error)
	LowStock(ctx context.Context) ([]dto.LowStockResponse, error)
	ListMovements(ctx context.Context, filter dto.StockMovementFilter) (*dto.StockMovementListResponse, error)
}

type inventoryService struct {
	products      repository.ProductRepository
	movements     repository.StockMovementRepository
	notifications repository.NotificationRepository
	settings      SettingsService
	priceCache    *infra.JSONCache
}

func NewInventoryService(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	notifications repository.NotificationRepository,
	settings SettingsService,
	rdb *redis.Client,
) InventoryService {
	return &inventoryService{
		products:      products,
		movements:     movements,
		notifications: notifications,
		settings:      settings,
		priceCache:    infra.NewJSONCache(rdb, priceCachePrefix, priceCacheTTL),
	}
}

// ── ApplyStockDelta ───────────────────────────────────────────────────────────
// Runs inside the commit transaction:
//   1. Load the product inside tx
//   2. Take quantity from the variant (or from variants in order when the line
//      has none), or from the product itself; clamp at zero
//   3. Persist product (and variant) stock and record a movement
//   4. Raise a low-stock alert and notification if needed

func (s *inventoryService) ApplyStockDelta(ctx context.Context, tx *gorm.DB, sale *model.Sale) ([]LowStockAlert, error) {
	var alerts []LowStockAlert
	var touched []string

	for _, item := range sale.Items {
		if item.TransactionType == model.TransactionService {
			continue
		}
		p, err := s.products.FindByIDTx(tx, item.ProductID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Deleted after it went into the cart; nothing left to decrement.
			log.Warn().Str("product_id", item.ProductID.String()).Msg("inventory: sold product no longer exists")
			continue
		}
		if err != nil {
			return nil, err
		}
		if p.IsService() {
			continue
		}

		before := p.Stock
		changed := takeStock(p, item.VariantID, item.Quantity)
		for _, v := range changed {
			if err := s.products.SetVariantStockTx(tx, v.ID, v.Stock); err != nil {
				return nil, err
			}
		}
		if err := s.products.SetStockTx(tx, p.ID, p.Stock); err != nil {
			return nil, err
		}

		saleID := sale.ID
		mov := &model.StockMovement{
			ProductID:   p.ID,
			VariantID:   item.VariantID,
			Kind:        model.MovementSale,
			Quantity:    p.Stock - before,
			StockBefore: before,
			StockAfter:  p.Stock,
			Reason:      fmt.Sprintf("Sale #%d", sale.TicketNumber),
			ReferenceID: &saleID,
		}
		if err := s.movements.CreateTx(tx, mov); err != nil {
			return nil, err
		}
		touched = append(touched, p.Barcode)

		if p.IsLowStock() {
			alerts = append(alerts, LowStockAlert{
				ProductID: p.ID, ProductName: p.Name, Stock: p.Stock, ReorderPoint: p.ReorderPoint,
			})
			if err := s.notifyLowStock(ctx, tx, p); err != nil {
				return nil, err
			}
		}
	}

	if err := s.priceCache.Delete(ctx, touched...); err != nil {
		log.Warn().Err(err).Msg("inventory: price cache invalidation failed")
	}
	return alerts, nil
}

// takeStock removes qty units from p, clamping at zero, and returns the
// variants whose stock changed. Product stock is resynced from variants.
func takeStock(p *model.Product, variantID *uuid.UUID, qty int) []*model.Variant {
	if len(p.Variants) == 0 {
		p.Stock = max(p.Stock-qty, 0)
		return nil
	}

	var changed []*model.Variant
	var v *model.Variant
	if variantID != nil {
		// A variant removed since the sale was rung up falls through to the
		// remaining variants.
		v = p.FindVariant(*variantID)
	}
	if v != nil {
		v.Stock = max(v.Stock-qty, 0)
		changed = append(changed, v)
	} else {
		remaining := qty
		for i := range p.Variants {
			if remaining == 0 {
				break
			}
			v := &p.Variants[i]
			if v.Stock == 0 {
				continue
			}
			take := min(v.Stock, remaining)
			v.Stock -= take
			remaining -= take
			changed = append(changed, v)
		}
	}
	p.SyncStock()
	return changed
}

func (s *inventoryService) AdjustStock(ctx context.Context, productID uuid.UUID, req dto.AdjustStockRequest) (*model.Product, error) {
	var variantID *uuid.UUID
	if req.VariantID != nil {
		id, err := uuid.Parse(*req.VariantID)
		if err != nil {
			return nil, fmt.Errorf("invalid variant_id: %w", err)
		}
		variantID = &id
	}

	var product *model.Product
	err := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		p, err := s.products.FindByIDTx(tx, productID)
		if err != nil {
			return notFound(err, ErrProductNotFound)
		}
		if p.IsService() {
			return ErrServiceStock
		}
		before := p.Stock

		switch {
		case variantID != nil:
			v := p.FindVariant(*variantID)
			if v == nil {
				return ErrProductNotFound
			}
			v.Stock = max(v.Stock+req.Delta, 0)
			p.SyncStock()
			if err := s.products.SetVariantStockTx(tx, v.ID, v.Stock); err != nil {
				return err
			}
		case len(p.Variants) > 0:
			return ErrVariantRequired
		default:
			p.Stock = max(p.Stock+req.Delta, 0)
		}
		if err := s.products.SetStockTx(tx, p.ID, p.Stock); err != nil {
			return err
		}

		mov := &model.StockMovement{
			ProductID:   p.ID,
			VariantID:   variantID,
			Kind:        model.MovementManualAdjust,
			Quantity:    p.Stock - before,
			StockBefore: before,
			StockAfter:  p.Stock,
			Reason:      req.Reason,
		}
		if err := s.movements.CreateTx(tx, mov); err != nil {
			return err
		}
		if p.IsLowStock() {
			if err := s.notifyLowStock(ctx, tx, p); err != nil {
				return err
			}
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.priceCache.Delete(ctx, product.Barcode); err != nil {
		log.Warn().Err(err).Msg("inventory: price cache invalidation failed")
	}
	log.Info().
		Str("product_id", product.ID.String()).
		Int("delta", req.Delta).
		Int("stock", product.Stock).
		Msg("inventory: manual stock adjustment")
	return product, nil
}

// notifyLowStock creates one unread low-stock notification per product.
func (s *inventoryService) notifyLowStock(ctx context.Context, tx *gorm.DB, p *model.Product) error {
	exists, err := s.notifications.HasUnreadForProduct(tx, p.ID, model.NotificationLowStock)
	if err != nil || exists {
		return err
	}
	lang := i18n.DefaultLanguage
	if s.settings != nil {
		if st, err := s.settings.Get(ctx); err == nil {
			lang = st.Language
		}
	}
	pid := p.ID
	return s.notifications.CreateTx(tx, &model.Notification{
		Type:        model.NotificationLowStock,
		Message:     fmt.Sprintf(i18n.T(lang, i18n.KeyLowStock), p.Name, p.Stock),
		ProductID:   &pid,
		ProductName: p.Name,
	})
}

func (s *inventoryService) LowStock(ctx context.Context) ([]dto.LowStockResponse, error) {
	products, _, err := s.products.List(ctx, dto.ProductFilter{LowStock: true, Page: 1, Limit: 500})
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.LowStockResponse{
			ProductID:    p.ID.String(),
			Name:         p.Name,
			Barcode:      p.Barcode,
			Stock:        p.Stock,
			ReorderPoint: p.ReorderPoint,
		})
	}
	return out, nil
}

func (s *inventoryService) ListMovements(ctx context.Context, filter dto.StockMovementFilter) (*dto.StockMovementListResponse, error) {
	rf := repository.StockMovementFilter{Kind: filter.Kind, Page: filter.Page, Limit: filter.Limit}
	if filter.ProductID != "" {
		id, err := uuid.Parse(filter.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product_id: %w", err)
		}
		rf.ProductID = &id
	}
	movements, total, err := s.movements.List(ctx, rf)
	if err != nil {
		return nil, err
	}
	return &dto.StockMovementListResponse{Data: movements, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

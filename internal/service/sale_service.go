package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nedpos/internal/checkout"
	"nedpos/internal/dto"
	"nedpos/internal/model"
	"nedpos/internal/repository"
	"nedpos/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CommitInput is everything needed to turn a cart into a sale.
type CommitInput struct {
	Items         []model.SaleItem
	PaymentMethod model.PaymentMethod
	Cashier       string
	CustomerID    *uuid.UUID
	Discount      checkout.Discount // nil means no discount
}

type SaleService interface {
	// Commit validates and persists one sale atomically. Sales are immutable
	// once committed.
	Commit(ctx context.Context, in CommitInput) (*model.Sale, error)
	// CreateFromRequest prices an explicit item list from the catalog and commits it.
	CreateFromRequest(ctx context.Context, cashier string, req dto.CreateSaleRequest) (*model.Sale, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type saleService struct {
	repo       repository.SaleRepository
	products   repository.ProductRepository
	customers  repository.CustomerRepository
	inventory  InventoryService
	dispatcher *worker.Dispatcher
	applyStock bool
	now        func() time.Time
}

func NewSaleService(
	repo repository.SaleRepository,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	inventory InventoryService,
	dispatcher *worker.Dispatcher,
	applyStock bool,
) SaleService {
	return &saleService{
		repo:       repo,
		products:   products,
		customers:  customers,
		inventory:  inventory,
		dispatcher: dispatcher,
		applyStock: applyStock,
		now:        time.Now,
	}
}

// ── Commit ────────────────────────────────────────────────────────────────────
//   1. Reject empty carts, missing cashier, bad payment method or quantity
//   2. Resolve the customer and snapshot its name
//   3. Price the items (discount clamped so the total never goes negative)
//   4. BEGIN TX: next ticket number, insert sale + items, optional stock delta
//   5. COMMIT
//   6. (async) enqueue the receipt job

func (s *saleService) Commit(ctx context.Context, in CommitInput) (*model.Sale, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyCart
	}
	cashier := strings.TrimSpace(in.Cashier)
	if cashier == "" {
		return nil, ErrNotAuthenticated
	}
	if !in.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return nil, checkout.ErrInvalidQuantity
		}
	}

	var customerName, customerEmail *string
	if in.CustomerID != nil {
		c, err := s.customers.FindByID(ctx, *in.CustomerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCustomerNotFound
			}
			return nil, fmt.Errorf("%w: %w", ErrCommitFailed, err)
		}
		name := c.Name
		customerName = &name
		customerEmail = c.Email
	}

	items := make([]model.SaleItem, len(in.Items))
	for i, it := range in.Items {
		it.ID = uuid.Nil
		it.SaleID = uuid.Nil
		it.Position = i
		items[i] = it
	}
	totals := checkout.Compute(items, in.Discount)

	sale := model.Sale{
		CustomerID:    in.CustomerID,
		CustomerName:  customerName,
		Subtotal:      totals.Subtotal,
		Discount:      totals.AppliedDiscount,
		Tax:           totals.Tax,
		Total:         totals.Total,
		PaymentMethod: in.PaymentMethod,
		Date:          s.now(),
		Cashier:       cashier,
		Items:         items,
	}

	var alerts []LowStockAlert
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ticket, err := s.repo.NextTicketNumber(ctx, tx)
		if err != nil {
			return err
		}
		sale.TicketNumber = ticket
		if err := s.repo.Create(ctx, tx, &sale); err != nil {
			return err
		}
		if s.applyStock {
			alerts, err = s.inventory.ApplyStockDelta(ctx, tx, &sale)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		log.Error().Err(txErr).Str("cashier", cashier).Msg("sale commit failed")
		return nil, fmt.Errorf("%w: %w", ErrCommitFailed, txErr)
	}

	log.Info().
		Int64("ticket", sale.TicketNumber).
		Str("total", sale.Total.StringFixed(2)).
		Str("cashier", cashier).
		Int("items", sale.ItemCount()).
		Msg("sale committed")
	for _, a := range alerts {
		log.Warn().Str("product", a.ProductName).Int("stock", a.Stock).Int("reorder_point", a.ReorderPoint).Msg("low stock after sale")
	}

	// Receipt rendering is best effort and never fails the sale.
	if s.dispatcher != nil {
		job := worker.ReceiptJobPayload{SaleID: sale.ID.String(), Email: customerEmail}
		if err := s.dispatcher.EnqueueReceipt(ctx, job); err != nil {
			log.Warn().Err(err).Str("sale_id", job.SaleID).Msg("failed to enqueue receipt job")
		}
	}
	return &sale, nil
}

func (s *saleService) CreateFromRequest(ctx context.Context, cashier string, req dto.CreateSaleRequest) (*model.Sale, error) {
	ids := make([]uuid.UUID, 0, len(req.Items))
	for _, it := range req.Items {
		id, err := uuid.Parse(it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product_id %q: %w", it.ProductID, err)
		}
		ids = append(ids, id)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	// Build through the cart so the same stock and merge rules apply.
	var cart checkout.Cart
	for i, it := range req.Items {
		p, ok := byID[ids[i]]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, it.ProductID)
		}
		variantID, err := parseOptionalUUID(it.VariantID)
		if err != nil {
			return nil, err
		}
		if err := cart.AddQuantity(p, variantID, it.Quantity); err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name, err)
		}
		if it.RentalDays != nil && p.TransactionType == model.TransactionRental {
			if err := cart.SetRentalDays(p.ID, variantID, *it.RentalDays); err != nil {
				return nil, err
			}
		}
	}

	customerID, err := parseOptionalUUID(req.CustomerID)
	if err != nil {
		return nil, err
	}
	return s.Commit(ctx, CommitInput{
		Items:         cart.Items(),
		PaymentMethod: req.PaymentMethod,
		Cashier:       cashier,
		CustomerID:    customerID,
		Discount:      checkout.ParseDiscount(req.Discount.Type, string(req.Discount.Value)),
	})
}

func (s *saleService) Get(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrSaleNotFound)
	}
	return sale, nil
}

func (s *saleService) List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.SaleListResponse{Data: sales, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func parseOptionalUUID(raw *string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, fmt.Errorf("invalid id %q: %w", *raw, err)
	}
	return &id, nil
}

package service

import (
	"context"
	"strings"

	"nedpos/internal/checkout"
	"nedpos/internal/dto"
	"nedpos/internal/model"
	"nedpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CartService keeps one open cart per cashier and checks it out through
// SaleService.
type CartService interface {
	// Get returns the cart priced with an optional discount preview.
	Get(ctx context.Context, cashier string, discount checkout.Discount) (*dto.CartResponse, error)
	AddItem(ctx context.Context, cashier string, req dto.AddCartItemRequest) (*dto.CartResponse, error)
	RemoveItem(ctx context.Context, cashier string, productID uuid.UUID, variantID *uuid.UUID) (*dto.CartResponse, error)
	SetRentalDays(ctx context.Context, cashier string, productID uuid.UUID, req dto.RentalDaysRequest) (*dto.CartResponse, error)
	Clear(ctx context.Context, cashier string) error
	// Checkout commits the cart. The cart is emptied only when the commit succeeds.
	Checkout(ctx context.Context, cashier string, req dto.CheckoutRequest) (*model.Sale, error)
}

type cartService struct {
	store    repository.CartStore
	products repository.ProductRepository
	sales    SaleService
}

func NewCartService(store repository.CartStore, products repository.ProductRepository, sales SaleService) CartService {
	return &cartService{store: store, products: products, sales: sales}
}

func (s *cartService) load(ctx context.Context, cashier string) (*checkout.Cart, error) {
	if strings.TrimSpace(cashier) == "" {
		return nil, ErrNotAuthenticated
	}
	return s.store.Load(ctx, cashier)
}

func (s *cartService) Get(ctx context.Context, cashier string, discount checkout.Discount) (*dto.CartResponse, error) {
	cart, err := s.load(ctx, cashier)
	if err != nil {
		return nil, err
	}
	return cartResponse(cart, discount), nil
}

func (s *cartService) AddItem(ctx context.Context, cashier string, req dto.AddCartItemRequest) (*dto.CartResponse, error) {
	cart, err := s.load(ctx, cashier)
	if err != nil {
		return nil, err
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	variantID, err := parseOptionalUUID(req.VariantID)
	if err != nil {
		return nil, err
	}
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}

	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	if err := cart.AddQuantity(p, variantID, qty); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, cashier, cart); err != nil {
		return nil, err
	}
	return cartResponse(cart, nil), nil
}

func (s *cartService) RemoveItem(ctx context.Context, cashier string, productID uuid.UUID, variantID *uuid.UUID) (*dto.CartResponse, error) {
	cart, err := s.load(ctx, cashier)
	if err != nil {
		return nil, err
	}
	if err := cart.Remove(productID, variantID); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, cashier, cart); err != nil {
		return nil, err
	}
	return cartResponse(cart, nil), nil
}

func (s *cartService) SetRentalDays(ctx context.Context, cashier string, productID uuid.UUID, req dto.RentalDaysRequest) (*dto.CartResponse, error) {
	cart, err := s.load(ctx, cashier)
	if err != nil {
		return nil, err
	}
	variantID, err := parseOptionalUUID(req.VariantID)
	if err != nil {
		return nil, err
	}
	if err := cart.SetRentalDays(productID, variantID, req.Days); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, cashier, cart); err != nil {
		return nil, err
	}
	return cartResponse(cart, nil), nil
}

func (s *cartService) Clear(ctx context.Context, cashier string) error {
	if strings.TrimSpace(cashier) == "" {
		return ErrNotAuthenticated
	}
	return s.store.Delete(ctx, cashier)
}

func (s *cartService) Checkout(ctx context.Context, cashier string, req dto.CheckoutRequest) (*model.Sale, error) {
	cart, err := s.load(ctx, cashier)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	customerID, err := parseOptionalUUID(req.CustomerID)
	if err != nil {
		return nil, err
	}

	sale, err := s.sales.Commit(ctx, CommitInput{
		Items:         cart.Items(),
		PaymentMethod: req.PaymentMethod,
		Cashier:       cashier,
		CustomerID:    customerID,
		Discount:      checkout.ParseDiscount(req.Discount.Type, string(req.Discount.Value)),
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, cashier); err != nil {
		// The sale is already committed; a stale cart is the lesser problem.
		log.Warn().Err(err).Str("cashier", cashier).Msg("cart: failed to clear after checkout")
	}
	return sale, nil
}

func cartResponse(cart *checkout.Cart, discount checkout.Discount) *dto.CartResponse {
	items := cart.Items()
	return &dto.CartResponse{Items: items, Totals: checkout.Compute(items, discount)}
}

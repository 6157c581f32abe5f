package service

import (
	"context"
	"errors"
	"testing"

	"nedpos/internal/checkout"
	"nedpos/internal/dto"
	"nedpos/internal/model"
	"nedpos/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubCartStore keeps carts by value so callers never share line slices.
type stubCartStore struct {
	carts map[string]checkout.Cart
}

func newStubCartStore() *stubCartStore {
	return &stubCartStore{carts: make(map[string]checkout.Cart)}
}

func (s *stubCartStore) Load(_ context.Context, cashier string) (*checkout.Cart, error) {
	c := s.carts[cashier]
	return &checkout.Cart{Lines: c.Items()}, nil
}

func (s *stubCartStore) Save(_ context.Context, cashier string, cart *checkout.Cart) error {
	s.carts[cashier] = checkout.Cart{Lines: cart.Items()}
	return nil
}

func (s *stubCartStore) Delete(_ context.Context, cashier string) error {
	delete(s.carts, cashier)
	return nil
}

var _ repository.CartStore = (*stubCartStore)(nil)

// failingSales rejects every commit.
type failingSales struct{ SaleService }

func (failingSales) Commit(context.Context, CommitInput) (*model.Sale, error) {
	return nil, ErrCommitFailed
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCart_AddMergesAndPrices(t *testing.T) {
	e := newTestEnv(t)
	store := newStubCartStore()
	svc := NewCartService(store, e.products, e.saleService(false))
	ctx := context.Background()

	kaftan := e.seedProduct(t, &model.Product{Name: "Kaftan", Stock: 5, SellingPrice: ptr(dec("250"))})

	_, err := svc.AddItem(ctx, "mona", dto.AddCartItemRequest{ProductID: kaftan.ID.String()})
	require.NoError(t, err)
	resp, err := svc.AddItem(ctx, "mona", dto.AddCartItemRequest{ProductID: kaftan.ID.String(), Quantity: 2})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Quantity)
	assert.True(t, resp.Totals.Total.Equal(dec("750")))

	preview, err := svc.Get(ctx, "mona", checkout.ParseDiscount("PERCENT", "20"))
	require.NoError(t, err)
	assert.True(t, preview.Totals.Total.Equal(dec("600")))

	other, err := svc.Get(ctx, "sara", nil)
	require.NoError(t, err)
	assert.Empty(t, other.Items)

	_, err = svc.AddItem(ctx, "", dto.AddCartItemRequest{ProductID: kaftan.ID.String()})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = svc.AddItem(ctx, "mona", dto.AddCartItemRequest{ProductID: uuid.NewString()})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCart_RentalDaysAndRemove(t *testing.T) {
	e := newTestEnv(t)
	svc := NewCartService(newStubCartStore(), e.products, e.saleService(false))
	ctx := context.Background()

	gown := e.seedProduct(t, &model.Product{Name: "Wedding Gown", Stock: 1, TransactionType: model.TransactionRental, RentalPricePerDay: ptr(dec("800"))})
	bag := e.seedProduct(t, &model.Product{Name: "Bag", Stock: 1, SellingPrice: ptr(dec("90"))})

	_, err := svc.AddItem(ctx, "mona", dto.AddCartItemRequest{ProductID: gown.ID.String()})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "mona", dto.AddCartItemRequest{ProductID: bag.ID.String()})
	require.NoError(t, err)

	resp, err := svc.SetRentalDays(ctx, "mona", gown.ID, dto.RentalDaysRequest{Days: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, *resp.Items[0].RentalDays)
	// rental days never change the price
	assert.True(t, resp.Totals.Total.Equal(dec("890")))

	_, err = svc.SetRentalDays(ctx, "mona", bag.ID, dto.RentalDaysRequest{Days: 2})
	assert.ErrorIs(t, err, checkout.ErrNotRental)

	resp, err = svc.RemoveItem(ctx, "mona", bag.ID, nil)
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)

	_, err = svc.RemoveItem(ctx, "mona", bag.ID, nil)
	assert.ErrorIs(t, err, checkout.ErrLineNotFound)
}

func TestCart_CheckoutClearsOnlyOnSuccess(t *testing.T) {
	e := newTestEnv(t)
	store := newStubCartStore()
	ctx := context.Background()
	shoes := e.seedProduct(t, &model.Product{Name: "Shoes", Stock: 3, SellingPrice: ptr(dec("600"))})

	failing := NewCartService(store, e.products, failingSales{})
	_, err := failing.AddItem(ctx, "mona", dto.AddCartItemRequest{ProductID: shoes.ID.String()})
	require.NoError(t, err)
	_, err = failing.Checkout(ctx, "mona", dto.CheckoutRequest{PaymentMethod: model.PaymentCash})
	assert.True(t, errors.Is(err, ErrCommitFailed))
	assert.Len(t, store.carts["mona"].Lines, 1)

	svc := NewCartService(store, e.products, e.saleService(false))
	sale, err := svc.Checkout(ctx, "mona", dto.CheckoutRequest{
		PaymentMethod: model.PaymentCard,
		Discount:      dto.DiscountInput{Type: "FIXED", Value: "100"},
	})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(dec("500")))
	assert.NotContains(t, store.carts, "mona")

	_, err = svc.Checkout(ctx, "mona", dto.CheckoutRequest{PaymentMethod: model.PaymentCard})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

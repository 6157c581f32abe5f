package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"nedpos/internal/checkout"
	"nedpos/internal/dto"
	"nedpos/internal/model"
	"nedpos/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCommit_RejectsBeforeTouchingStorage(t *testing.T) {
	e := newTestEnv(t)
	svc := e.saleService(false)
	ctx := context.Background()
	shirt := e.seedProduct(t, &model.Product{Name: "Shirt", Stock: 3, SellingPrice: ptr(dec("200"))})
	items := cartItems(t, shirt)

	tests := []struct {
		name string
		in   CommitInput
		want error
	}{
		{"empty cart", CommitInput{PaymentMethod: model.PaymentCash, Cashier: "mona"}, ErrEmptyCart},
		{"no cashier", CommitInput{Items: items, PaymentMethod: model.PaymentCash, Cashier: "  "}, ErrNotAuthenticated},
		{"bad payment", CommitInput{Items: items, PaymentMethod: "CHEQUE", Cashier: "mona"}, ErrInvalidPaymentMethod},
		{"unknown customer", CommitInput{Items: items, PaymentMethod: model.PaymentCard, Cashier: "mona", CustomerID: ptr(uuid.New())}, ErrCustomerNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Commit(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, total, err := e.sales.List(ctx, dto.SaleFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCommit_PersistsSnapshotAndTotals(t *testing.T) {
	e := newTestEnv(t)
	svc := e.saleService(false)
	fixed := time.Date(2026, 3, 14, 11, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	dress := e.seedProduct(t, &model.Product{Name: "Evening Dress", Stock: 2, SellingPrice: ptr(dec("1500"))})
	belt := e.seedProduct(t, &model.Product{Name: "Belt", Stock: 10, SellingPrice: ptr(dec("120"))})
	customer := &model.Customer{Name: "Hala Mostafa", Email: ptr("hala@example.com")}
	require.NoError(t, e.customers.Create(ctx, customer))

	sale, err := svc.Commit(ctx, CommitInput{
		Items:         cartItems(t, dress, belt, belt),
		PaymentMethod: model.PaymentEWallet,
		Cashier:       "mona",
		CustomerID:    &customer.ID,
		Discount:      checkout.Percent{Pct: dec("10")},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), sale.TicketNumber)
	assert.True(t, sale.Subtotal.Equal(dec("1740")))
	assert.True(t, sale.Discount.Equal(dec("174")))
	assert.True(t, sale.Total.Equal(dec("1566")))
	assert.True(t, sale.Tax.IsZero())
	require.NotNil(t, sale.CustomerName)
	assert.Equal(t, "Hala Mostafa", *sale.CustomerName)
	assert.Equal(t, fixed, sale.Date)

	stored, err := e.sales.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, "Evening Dress", stored.Items[0].ProductName)
	assert.Equal(t, 2, stored.Items[1].Quantity)

	// Renaming the product later leaves the sale untouched.
	dress.Name = "Renamed"
	require.NoError(t, e.products.Update(ctx, dress))
	stored, err = e.sales.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "Evening Dress", stored.Items[0].ProductName)

	// So does renaming the customer: the name was copied at commit time.
	customer.Name = "Hala M. Saleh"
	require.NoError(t, e.customers.Update(ctx, customer))
	stored, err = e.sales.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CustomerName)
	assert.Equal(t, "Hala Mostafa", *stored.CustomerName)

	// Stock is untouched unless enabled.
	assert.Equal(t, 2, e.reload(t, dress.ID).Stock)

	next, err := svc.Commit(ctx, CommitInput{Items: cartItems(t, belt), PaymentMethod: model.PaymentCash, Cashier: "mona"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.TicketNumber)
}

// brokenSaleRepo writes the sale and then fails, so the commit must roll back.
type brokenSaleRepo struct{ repository.SaleRepository }

func (r brokenSaleRepo) Create(ctx context.Context, tx *gorm.DB, sale *model.Sale) error {
	if err := r.SaleRepository.Create(ctx, tx, sale); err != nil {
		return err
	}
	return errors.New("disk I/O error")
}

func TestCommit_StorageFailureLeavesNothingBehind(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	svc := NewSaleService(brokenSaleRepo{e.sales}, e.products, e.customers, e.inventory, nil, true)
	coat := e.seedProduct(t, &model.Product{Name: "Coat", Stock: 2, SellingPrice: ptr(dec("1200"))})

	_, err := svc.Commit(ctx, CommitInput{Items: cartItems(t, coat), PaymentMethod: model.PaymentCash, Cashier: "mona"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCommitFailed))

	_, total, err := e.sales.List(ctx, dto.SaleFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	var items int64
	require.NoError(t, e.db.Model(&model.SaleItem{}).Count(&items).Error)
	assert.Zero(t, items)
	assert.Equal(t, 2, e.reload(t, coat.ID).Stock)

	// Checkout through the cart keeps the cart for another attempt.
	store := newStubCartStore()
	carts := NewCartService(store, e.products, svc)
	_, err = carts.AddItem(ctx, "mona", dto.AddCartItemRequest{ProductID: coat.ID.String()})
	require.NoError(t, err)
	_, err = carts.Checkout(ctx, "mona", dto.CheckoutRequest{PaymentMethod: model.PaymentCash})
	assert.ErrorIs(t, err, ErrCommitFailed)
	assert.Len(t, store.carts["mona"].Lines, 1)
}

func TestCommit_DiscountLargerThanSubtotalClampsToZero(t *testing.T) {
	e := newTestEnv(t)
	svc := e.saleService(false)
	scarf := e.seedProduct(t, &model.Product{Name: "Scarf", Stock: 4, SellingPrice: ptr(dec("100"))})

	sale, err := svc.Commit(context.Background(), CommitInput{
		Items: cartItems(t, scarf), PaymentMethod: model.PaymentCash, Cashier: "mona",
		Discount: checkout.Fixed{Value: dec("150")},
	})
	require.NoError(t, err)
	assert.True(t, sale.Total.IsZero())
	assert.True(t, sale.Discount.Equal(dec("100")))
}

func TestCommit_AppliesStockWhenEnabled(t *testing.T) {
	e := newTestEnv(t)
	svc := e.saleService(true)
	ctx := context.Background()

	jacket := e.seedProduct(t, &model.Product{
		Name: "Jacket", SellingPrice: ptr(dec("900")), ReorderPoint: 2,
		Variants: []model.Variant{
			{Color: "Navy", Size: "M", Stock: 2},
			{Color: "Navy", Size: "L", Stock: 1},
		},
	})
	alteration := e.seedProduct(t, &model.Product{Name: "Alteration", TransactionType: model.TransactionService, SellingPrice: ptr(dec("50"))})

	medium := jacket.Variants[0]
	if medium.Size != "M" {
		medium = jacket.Variants[1]
	}
	var c checkout.Cart
	require.NoError(t, c.Add(jacket, &medium.ID))
	require.NoError(t, c.Add(alteration, nil))

	sale, err := svc.Commit(ctx, CommitInput{Items: c.Items(), PaymentMethod: model.PaymentCard, Cashier: "mona"})
	require.NoError(t, err)

	after := e.reload(t, jacket.ID)
	assert.Equal(t, 2, after.Stock)
	assert.Equal(t, 1, after.FindVariant(medium.ID).Stock)
	assert.Equal(t, model.UnlimitedStock, e.reload(t, alteration.ID).Stock)

	moves, total, err := e.movements.List(ctx, repository.StockMovementFilter{ProductID: &jacket.ID, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, -1, moves[0].Quantity)
	assert.Equal(t, sale.ID, *moves[0].ReferenceID)

	notes, err := e.notifications.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, model.NotificationLowStock, notes[0].Type)
	assert.Contains(t, notes[0].Message, "Jacket")
}

func TestCreateFromRequest_UsesCatalogPrices(t *testing.T) {
	e := newTestEnv(t)
	svc := e.saleService(false)
	ctx := context.Background()

	tux := e.seedProduct(t, &model.Product{Name: "Tuxedo", Stock: 1, TransactionType: model.TransactionRental, RentalPricePerDay: ptr(dec("300"))})
	gone := e.seedProduct(t, &model.Product{Name: "Sold out", Stock: 0, SellingPrice: ptr(dec("10"))})

	sale, err := svc.CreateFromRequest(ctx, "mona", dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: tux.ID.String(), Quantity: 1, RentalDays: ptr(3)}},
		PaymentMethod: model.PaymentCash,
	})
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)
	assert.True(t, sale.Items[0].Price.Equal(dec("300")))
	assert.Equal(t, 3, *sale.Items[0].RentalDays)
	assert.True(t, sale.Total.Equal(dec("300")))

	_, err = svc.CreateFromRequest(ctx, "mona", dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: gone.ID.String(), Quantity: 1}},
		PaymentMethod: model.PaymentCash,
	})
	assert.ErrorIs(t, err, checkout.ErrOutOfStock)

	_, err = svc.CreateFromRequest(ctx, "mona", dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: uuid.NewString(), Quantity: 1}},
		PaymentMethod: model.PaymentCash,
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGet_UnknownSale(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.saleService(false).Get(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, ErrSaleNotFound))
}

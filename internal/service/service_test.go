package service

import (
	"context"
	"testing"

	"nedpos/internal/checkout"
	"nedpos/internal/config"
	"nedpos/internal/infra"
	"nedpos/internal/model"
	"nedpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv wires the real repositories over an in-memory SQLite database.
// Redis-backed pieces run without a client: caches become no-ops.
type testEnv struct {
	db            *gorm.DB
	products      repository.ProductRepository
	sales         repository.SaleRepository
	customers     repository.CustomerRepository
	movements     repository.StockMovementRepository
	notifications repository.NotificationRepository
	settings      SettingsService
	inventory     InventoryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := infra.NewDatabase("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	e := &testEnv{
		db:            db,
		products:      repository.NewProductRepository(db),
		sales:         repository.NewSaleRepository(db),
		customers:     repository.NewCustomerRepository(db),
		movements:     repository.NewStockMovementRepository(db),
		notifications: repository.NewNotificationRepository(db),
	}
	e.settings = NewSettingsService(repository.NewSettingsRepository(db), &config.Config{
		StoreName: "NED Fashion", StoreCurrency: "EGP", StoreLanguage: "en",
	})
	e.inventory = NewInventoryService(e.products, e.movements, e.notifications, e.settings, nil)
	return e
}

func (e *testEnv) saleService(applyStock bool) *saleService {
	return NewSaleService(e.sales, e.products, e.customers, e.inventory, nil, applyStock).(*saleService)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

func (e *testEnv) seedProduct(t *testing.T, p *model.Product) *model.Product {
	t.Helper()
	if p.TransactionType == "" {
		p.TransactionType = model.TransactionSale
	}
	if p.Barcode == "" {
		p.Barcode = uuid.NewString()[:12]
	}
	p.SyncStock()
	require.NoError(t, e.products.Create(context.Background(), p))
	return p
}

func (e *testEnv) reload(t *testing.T, id uuid.UUID) *model.Product {
	t.Helper()
	p, err := e.products.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

// cartItems rings the products up through a cart, one unit each.
func cartItems(t *testing.T, products ...*model.Product) []model.SaleItem {
	t.Helper()
	var c checkout.Cart
	for _, p := range products {
		require.NoError(t, c.Add(p, nil))
	}
	return c.Items()
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"nedpos/internal/checkout"
	"nedpos/internal/config"
	"nedpos/internal/dto"
	"nedpos/internal/infra"
	"nedpos/internal/middleware"
	"nedpos/internal/model"
	"nedpos/internal/repository"
	"nedpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCartStore struct{ carts map[string][]model.SaleItem }

func (s *memCartStore) Load(_ context.Context, cashier string) (*checkout.Cart, error) {
	return &checkout.Cart{Lines: append([]model.SaleItem(nil), s.carts[cashier]...)}, nil
}

func (s *memCartStore) Save(_ context.Context, cashier string, cart *checkout.Cart) error {
	s.carts[cashier] = cart.Items()
	return nil
}

func (s *memCartStore) Delete(_ context.Context, cashier string) error {
	delete(s.carts, cashier)
	return nil
}

var _ repository.CartStore = (*memCartStore)(nil)

// asCashier stands in for JWTAuth.
func asCashier(username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ClaimsKey, &middleware.JWTClaims{Username: username, Role: model.RoleSales})
		c.Next()
	}
}

// posRouter serves the catalog, cart and sales routes over SQLite.
func posRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := infra.NewDatabase("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	products := repository.NewProductRepository(db)
	settings := service.NewSettingsService(repository.NewSettingsRepository(db), &config.Config{StoreName: "NED", StoreCurrency: "EGP", StoreLanguage: "en"})
	inventory := service.NewInventoryService(products, repository.NewStockMovementRepository(db), repository.NewNotificationRepository(db), settings, nil)
	sales := service.NewSaleService(repository.NewSaleRepository(db), products, repository.NewCustomerRepository(db), inventory, nil, false)
	productSvc := service.NewProductService(products, repository.NewPriceChangeRepository(db), nil)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	priceH := NewPriceCheckHandler(productSvc)
	r.GET("/price/:barcode", priceH.GetPrice)

	v1 := r.Group("/v1", asCashier("mona"))
	productsH := NewProductsHandler(productSvc)
	v1.POST("/products", productsH.Create)
	v1.GET("/products/:id", productsH.Get)
	v1.DELETE("/products/:id", productsH.Delete)

	cartH := NewCartHandler(service.NewCartService(&memCartStore{carts: map[string][]model.SaleItem{}}, products, sales))
	v1.GET("/cart", cartH.Get)
	v1.POST("/cart/items", cartH.AddItem)
	v1.DELETE("/cart/items/:product_id", cartH.RemoveItem)
	v1.POST("/cart/checkout", cartH.Checkout)

	salesH := NewSalesHandler(sales)
	v1.POST("/sales", salesH.Create)
	v1.GET("/sales/:id", salesH.Get)
	return r
}

func createProduct(t *testing.T, r http.Handler, req dto.ProductRequest) model.Product {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/v1/products", "", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

func price(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestProducts_CreateValidateAndLookup(t *testing.T) {
	r := posRouter(t)
	p := createProduct(t, r, dto.ProductRequest{
		Name: "Linen Shirt", Barcode: "LIN-001", Stock: 4, SellingPrice: price("350"), TransactionType: model.TransactionSale,
	})

	w := doJSON(t, r, http.MethodPost, "/v1/products", "", dto.ProductRequest{Name: "Dup", Barcode: "LIN-001", TransactionType: model.TransactionSale})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "duplicate_barcode")

	w = doJSON(t, r, http.MethodPost, "/v1/products", "", dto.ProductRequest{Name: "X", Barcode: "B", TransactionType: "GIFT"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, r, http.MethodGet, "/price/LIN-001", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"in_stock":true`)

	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodGet, "/v1/products/not-a-uuid", "", nil).Code)
	assert.Equal(t, http.StatusNoContent, doJSON(t, r, http.MethodDelete, "/v1/products/"+p.ID.String(), "", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/v1/products/"+p.ID.String(), "", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/price/LIN-001", "", nil).Code)
}

func TestCart_RingUpAndCheckout(t *testing.T) {
	r := posRouter(t)
	shirt := createProduct(t, r, dto.ProductRequest{Name: "Linen Shirt", Barcode: "LIN-001", Stock: 4, SellingPrice: price("350"), TransactionType: model.TransactionSale})
	tux := createProduct(t, r, dto.ProductRequest{Name: "Tuxedo", Barcode: "TUX-001", Stock: 1, RentalPricePerDay: price("200"), TransactionType: model.TransactionRental})

	w := doJSON(t, r, http.MethodPost, "/v1/cart/items", "", dto.AddCartItemRequest{ProductID: shirt.ID.String(), Quantity: 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doJSON(t, r, http.MethodPost, "/v1/cart/items", "", dto.AddCartItemRequest{ProductID: tux.ID.String()})
	require.Equal(t, http.StatusOK, w.Code)

	soldOut := createProduct(t, r, dto.ProductRequest{Name: "Scarf", Barcode: "SCF-001", SellingPrice: price("90"), TransactionType: model.TransactionSale})
	w = doJSON(t, r, http.MethodPost, "/v1/cart/items", "", dto.AddCartItemRequest{ProductID: soldOut.ID.String()})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "out_of_stock")

	w = doJSON(t, r, http.MethodGet, "/v1/cart?discount_type=PERCENT&discount_value=10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cart dto.CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Len(t, cart.Items, 2)
	assert.True(t, cart.Totals.Subtotal.Equal(decimal.NewFromInt(900)))
	assert.True(t, cart.Totals.Total.Equal(decimal.NewFromInt(810)))

	w = doJSON(t, r, http.MethodPost, "/v1/cart/checkout", "", map[string]any{"payment_method": "CHEQUE"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, r, http.MethodPost, "/v1/cart/checkout", "", dto.CheckoutRequest{
		PaymentMethod: model.PaymentCash,
		Discount:      dto.DiscountInput{Type: "FIXED", Value: "100"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var sale model.Sale
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sale))
	assert.Equal(t, int64(1), sale.TicketNumber)
	assert.Equal(t, "mona", sale.Cashier)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(800)))

	w = doJSON(t, r, http.MethodGet, "/v1/cart", "", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Empty(t, cart.Items)

	w = doJSON(t, r, http.MethodPost, "/v1/cart/checkout", "", dto.CheckoutRequest{PaymentMethod: model.PaymentCash})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "empty_cart")

	w = doJSON(t, r, http.MethodGet, "/v1/sales/"+sale.ID.String(), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodGet, "/v1/sales/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSales_CreateFromItems(t *testing.T) {
	r := posRouter(t)
	shirt := createProduct(t, r, dto.ProductRequest{Name: "Linen Shirt", Barcode: "LIN-001", Stock: 4, SellingPrice: price("350"), TransactionType: model.TransactionSale})
	soldOut := createProduct(t, r, dto.ProductRequest{Name: "Scarf", Barcode: "SCF-001", SellingPrice: price("90"), TransactionType: model.TransactionSale})

	w := doJSON(t, r, http.MethodPost, "/v1/sales", "", dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: soldOut.ID.String(), Quantity: 1}},
		PaymentMethod: model.PaymentCard,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/v1/sales", "", dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: shirt.ID.String(), Quantity: 2}},
		PaymentMethod: model.PaymentCard,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// A numeric discount value is accepted like its string form.
	w = doJSON(t, r, http.MethodPost, "/v1/sales", "", map[string]any{
		"items":          []map[string]any{{"product_id": shirt.ID.String(), "quantity": 2}},
		"payment_method": "CASH",
		"discount":       map[string]any{"type": "PERCENT", "value": 10},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var sale model.Sale
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sale))
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("630")), sale.Total.String())

	// An unreadable value is no discount rather than a bad request.
	w = doJSON(t, r, http.MethodPost, "/v1/sales", "", map[string]any{
		"items":          []map[string]any{{"product_id": shirt.ID.String(), "quantity": 1}},
		"payment_method": "CASH",
		"discount":       map[string]any{"type": "FIXED", "value": map[string]any{"x": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sale))
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("350")), sale.Total.String())
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		err    error
		status int
		body   string
	}{
		{fmt.Errorf("line 2: %w", checkout.ErrOutOfStock), http.StatusConflict, "out_of_stock"},
		{service.ErrRepairNotFound, http.StatusNotFound, "repair_not_found"},
		{service.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
		{fmt.Errorf("%w: pq: deadlock detected", service.ErrCommitFailed), http.StatusInternalServerError, "commit_failed"},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondError(c, tt.err)
		assert.Equal(t, tt.status, w.Code)
		assert.Contains(t, w.Body.String(), tt.body)
		assert.NotContains(t, w.Body.String(), "pq:")
	}
}

func TestDeadLetters_WithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/dlq", DeadLetters(nil))
	w := doJSON(t, r, http.MethodGet, "/dlq", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

//go:build integration

package router_test

// End-to-end tests over real Postgres and Redis started with testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nedpos/internal/config"
	"nedpos/internal/infra"
	"nedpos/internal/model"
	"nedpos/internal/repository"
	"nedpos/internal/router"
	"nedpos/internal/service"
	"nedpos/internal/worker"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any, token string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		buf = *jsonBody(t, body)
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	owner  string // owner JWT
	sales  string // sales JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("nedpos_test"),
		tcPostgres.WithUsername("nedpos"),
		tcPostgres.WithPassword("nedpos"),
		testcontainers.WithWaitStrategy(tcPostgres.BasicWaitStrategies()...),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(context.Background()) })
	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(context.Background()) })
	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		StoreName:          "NED Fashion",
		StoreCurrency:      "EGP",
		StoreLanguage:      "en",
		ReceiptStoragePath: t.TempDir(),
		ApplyStockOnCommit: true,
		CartTTLHours:       1,
		CORSOrigins:        "*",
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	for username, role := range map[string]string{"owner": model.RoleOwner, "mona": model.RoleSales} {
		hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
		require.NoError(t, err)
		require.NoError(t, db.Create(&model.User{Username: username, Name: username, PasswordHash: string(hash), Role: role, Active: true}).Error)
	}

	breaker := infra.NewCircuitBreaker(infra.DefaultBreakerConfig("smtp"))
	receiptRepo := repository.NewReceiptRepository(db)
	receiptWorker := worker.NewReceiptWorker(receiptRepo, repository.NewSaleRepository(db),
		service.NewSettingsService(repository.NewSettingsRepository(db), cfg), worker.NewDispatcher(rdb), cfg.ReceiptStoragePath)
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, map[string]worker.JobHandler{worker.JobReceipt: receiptWorker.Process})

	srv := httptest.NewServer(router.New(cfg, db, rdb, breaker))
	t.Cleanup(srv.Close)

	login := func(username string) string {
		resp := do(t, srv, http.MethodPost, "/v1/auth/login", map[string]string{"username": username, "password": "secret123"}, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body struct {
			AccessToken string `json:"access_token"`
		}
		decodeJSON(t, resp, &body)
		require.NotEmpty(t, body.AccessToken)
		return body.AccessToken
	}
	return &testEnv{server: srv, owner: login("owner"), sales: login("mona")}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_SaleCycleWithReceipt(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, http.MethodPost, "/v1/products", map[string]any{
		"name": "Evening Dress", "barcode": "DRS-0001", "selling_price": "1200", "reorder_point": 2,
		"transaction_type": "SALE",
		"variants":         []map[string]any{{"color": "Black", "size": "M", "stock": 3}},
	}, env.owner)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prod struct {
		ID       string `json:"id"`
		Stock    int    `json:"stock"`
		Variants []struct {
			ID string `json:"id"`
		} `json:"variants"`
	}
	decodeJSON(t, resp, &prod)
	require.Len(t, prod.Variants, 1)
	assert.Equal(t, 3, prod.Stock)

	resp = do(t, env.server, http.MethodPost, "/v1/products", map[string]any{"name": "x", "barcode": "xyz1", "transaction_type": "SALE"}, env.sales)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, http.MethodPost, "/v1/cart/items", map[string]any{"product_id": prod.ID, "variant_id": prod.Variants[0].ID, "quantity": 2}, env.sales)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, http.MethodPost, "/v1/cart/checkout", map[string]any{
		"payment_method": "CARD", "discount": map[string]string{"type": "PERCENT", "value": "10"},
	}, env.sales)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sale struct {
		ID           string `json:"id"`
		TicketNumber int64  `json:"ticket_number"`
		Total        string `json:"total"`
		Cashier      string `json:"cashier"`
	}
	decodeJSON(t, resp, &sale)
	assert.Equal(t, int64(1), sale.TicketNumber)
	assert.True(t, decimal.RequireFromString(sale.Total).Equal(decimal.NewFromInt(2160)))
	assert.Equal(t, "mona", sale.Cashier)

	// Stock applied: one unit left, at or under the reorder point.
	resp = do(t, env.server, http.MethodGet, "/v1/products/"+prod.ID, nil, env.sales)
	decodeJSON(t, resp, &prod)
	assert.Equal(t, 1, prod.Stock)

	resp = do(t, env.server, http.MethodGet, "/v1/notifications?unread=true", nil, env.owner)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var notes []map[string]any
	decodeJSON(t, resp, &notes)
	assert.NotEmpty(t, notes)

	// The worker pool renders the receipt in the background.
	require.Eventually(t, func() bool {
		resp := do(t, env.server, http.MethodGet, "/v1/receipts/"+sale.ID, nil, env.sales)
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return false
		}
		var rc struct {
			Status string  `json:"status"`
			PDFUrl *string `json:"pdf_url"`
		}
		decodeJSON(t, resp, &rc)
		return rc.Status == model.ReceiptIssued && rc.PDFUrl != nil
	}, 20*time.Second, 250*time.Millisecond)
}

func TestE2E_RepairWorkflow(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, http.MethodPost, "/v1/repairs", map[string]any{
		"customer_name": "Yara", "garment": "Abaya", "tag": "R-17", "issue_description": "Hem",
	}, env.sales)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var repair struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decodeJSON(t, resp, &repair)
	assert.Equal(t, "PENDING", repair.Status)

	resp = do(t, env.server, http.MethodPatch, "/v1/repairs/"+repair.ID+"/status", map[string]string{"status": "COMPLETED"}, env.sales)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	for _, status := range []string{"IN_PROGRESS", "READY", "COMPLETED"} {
		resp = do(t, env.server, http.MethodPatch, "/v1/repairs/"+repair.ID+"/status", map[string]string{"status": status}, env.sales)
		require.Equal(t, http.StatusOK, resp.StatusCode, status)
		resp.Body.Close()
	}

	resp = do(t, env.server, http.MethodGet, "/v1/repairs/"+repair.ID+"/ticket", nil, env.sales)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, http.MethodGet, "/v1/reports/dashboard", nil, env.owner)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var dash struct {
		PendingRepairs int64 `json:"pending_repairs"`
		SalesByDay     []any `json:"sales_by_day"`
	}
	decodeJSON(t, resp, &dash)
	assert.Zero(t, dash.PendingRepairs)
	assert.Len(t, dash.SalesByDay, 7)
}

func TestE2E_HealthReportsDependencies(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	decodeJSON(t, resp, &body)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "connected", body["db"])
	assert.Equal(t, "connected", body["redis"])
	assert.Contains(t, body, "smtp")

	resp = do(t, env.server, http.MethodGet, "/v1/admin/dead-letters", nil, env.sales)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, http.MethodGet, "/v1/admin/dead-letters", nil, env.owner)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var queues []struct {
		Queue  string `json:"queue"`
		Length int64  `json:"length"`
	}
	decodeJSON(t, resp, &queues)
	require.Len(t, queues, 2)
	assert.Zero(t, queues[0].Length)
}

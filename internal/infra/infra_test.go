package infra

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"nedpos/internal/config"
	"nedpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(lang string) *model.StoreSettings {
	return &model.StoreSettings{
		Name: "NED Fashion", Phone: "+20 100 000 0000", Currency: "EGP", Language: lang,
		FooterText: "Exchanges within 14 days",
	}
}

func TestGenerateReceiptPDF(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "receipts")
	customer := "Hala"
	days := 3
	sale := &model.Sale{
		TicketNumber:  42,
		Date:          time.Date(2026, 4, 2, 18, 5, 0, 0, time.UTC),
		Cashier:       "mona",
		CustomerName:  &customer,
		PaymentMethod: model.PaymentCard,
		Subtotal:      decimal.NewFromInt(2100),
		Discount:      decimal.NewFromInt(100),
		Total:         decimal.NewFromInt(2000),
		Items: []model.SaleItem{
			{ProductName: "Embroidered evening dress with long sleeves", VariantLabel: "Black / M", Quantity: 1, Price: decimal.NewFromInt(1500)},
			{ProductName: "Tuxedo", Quantity: 1, Price: decimal.NewFromInt(600), RentalDays: &days},
		},
	}

	for _, lang := range []string{"en", "fr", "ar"} {
		t.Run(lang, func(t *testing.T) {
			path, err := GenerateReceiptPDF(sale, testStore(lang), dir)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, "receipt_42.pdf"), path)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.True(t, len(data) > 4 && string(data[:4]) == "%PDF")
		})
	}
}

func TestGenerateRepairTicketPDF(t *testing.T) {
	done := time.Now()
	r := &model.Repair{
		ID: uuid.New(), CustomerName: "Yara", Garment: "Abaya", Tag: "R-17",
		IssueDescription: "Shorten sleeves by 3cm", Status: model.RepairCompleted,
		ReceivedAt: done.AddDate(0, 0, -4), CompletedAt: &done,
	}
	path, err := GenerateRepairTicketPDF(r, testStore("de"), t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, path, "repair_"+r.ID.String())
}

func TestJSONCache_NilClientIsAlwaysMissing(t *testing.T) {
	c := NewJSONCache(nil, "price:", time.Minute)
	assert.Nil(t, c)

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", map[string]int{"a": 1}))
	var out map[string]int
	hit, err := c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestSMTPMailer_DisabledWithoutHost(t *testing.T) {
	m := NewMailer(&config.Config{SMTPUser: "shop@example.com", SMTPPort: 587})
	err := m.Send(context.Background(), Mail{To: "c@example.com", Subject: "x"})
	assert.ErrorIs(t, err, ErrMailerDisabled)
	assert.Equal(t, "shop@example.com", m.from)
}

func TestNewDatabase_SQLiteMigrates(t *testing.T) {
	db, err := NewDatabase("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	for _, m := range []any{&model.Product{}, &model.Sale{}, &model.Receipt{}, &model.Repair{}, &model.StoreSettings{}} {
		assert.True(t, db.Migrator().HasTable(m))
	}
	assert.Equal(t, "sqlite", db.Dialector.Name())
}

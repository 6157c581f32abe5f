package infra

import (
	"fmt"
	"strings"

	"nedpos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection and brings the schema up to date:
// AutoMigrate for tables, then idempotent SQL patches for what GORM cannot
// express (sequences, partial indexes). postgres:// URLs use pgx; a "file:"
// DSN or a path ending in .db opens SQLite for a single-till install.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(dialector(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

func dialector(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "file:") || strings.HasSuffix(dsn, ".db") {
		return sqlite.Open(dsn)
	}
	return postgres.Open(dsn)
}

// Models lists every persisted type in dependency order.
func Models() []any {
	return []any{
		&model.User{},
		&model.Product{},
		&model.Variant{},
		&model.Customer{},
		&model.Sale{},
		&model.SaleItem{},
		&model.StockMovement{},
		&model.PriceChange{},
		&model.Receipt{},
		&model.Repair{},
		&model.Supplier{},
		&model.Purchase{},
		&model.PurchaseItem{},
		&model.Notification{},
		&model.StoreSettings{},
	}
}

// RunMigrations migrates all tables. Postgres-only patches are skipped on
// other dialects so repository tests can run against in-memory SQLite.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL statements that GORM AutoMigrate cannot
// handle on its own. Each statement uses IF NOT EXISTS semantics so re-running
// on an already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// ticket numbers come from a sequence so concurrent commits never collide
		`CREATE SEQUENCE IF NOT EXISTS sales_ticket_number_seq`,
		// resume after existing rows when the sequence lags behind the table
		`SELECT setval('sales_ticket_number_seq', (SELECT COALESCE(MAX(ticket_number), 0) + 1 FROM sales), false)
		  WHERE (SELECT COALESCE(MAX(ticket_number), 0) FROM sales) >= (SELECT last_value FROM sales_ticket_number_seq)`,
		// partial index for the retry cron query
		`CREATE INDEX IF NOT EXISTS idx_receipts_pending_retry
		     ON receipts (next_retry_at)
		     WHERE status = 'pending' AND next_retry_at IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_products_low_stock
		     ON products (stock)
		     WHERE transaction_type <> 'SERVICE' AND active`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}

package service

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors returned by the service layer. Handlers map them to HTTP
// status codes with errors.Is.
var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrNotAuthenticated     = errors.New("no authenticated cashier")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrCommitFailed         = errors.New("operation failed")

	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateBarcode = errors.New("a product with this barcode already exists")
	ErrVariantRequired  = errors.New("product has variants, variant_id is required")
	ErrServiceStock     = errors.New("service products have no stock")

	ErrCustomerNotFound     = errors.New("customer not found")
	ErrSaleNotFound         = errors.New("sale not found")
	ErrRepairNotFound       = errors.New("repair not found")
	ErrInvalidTransition    = errors.New("repair status can only move one step forward")
	ErrTicketNotReady       = errors.New("repair ticket is not available")
	ErrSupplierNotFound     = errors.New("supplier not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrReceiptNotFound      = errors.New("receipt not found")
	ErrReceiptNotReady      = errors.New("receipt PDF is not generated yet")
	ErrInvalidCurrency      = errors.New("unknown ISO 4217 currency code")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("refresh token is invalid or expired")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// notFound translates gorm's record-not-found into the given sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

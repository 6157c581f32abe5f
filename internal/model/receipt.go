package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Receipt tracks the printable ticket generated for a sale.
// Status: "pending" | "issued" | "error"
type Receipt struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SaleID  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"sale_id"`
	Status  string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PDFPath *string   `json:"pdf_path,omitempty"`
	// Email is the customer address the receipt goes to once issued
	Email *string `json:"email,omitempty"`
	// Retry fields used by the retry cron
	RetryCount  int        `gorm:"not null;default:0" json:"retry_count"`
	NextRetryAt *time.Time `json:"next_retry_at,omitempty"`
	LastError   *string    `json:"last_error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

const (
	ReceiptPending = "pending"
	ReceiptIssued  = "issued"
	ReceiptError   = "error"
)

func (r *Receipt) BeforeCreate(*gorm.DB) error {
	assignID(&r.ID)
	return nil
}

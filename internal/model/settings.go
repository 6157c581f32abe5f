package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoreSettings is the single-row store profile printed on receipts.
// TaxRate is kept for display only; sale totals never apply it.
type StoreSettings struct {
	ID                 uint            `gorm:"primaryKey" json:"-"`
	Name               string          `gorm:"not null" json:"name"`
	OwnerName          string          `gorm:"not null;default:''" json:"owner_name"`
	Phone              string          `gorm:"not null;default:''" json:"phone"`
	RegistrationNumber string          `gorm:"not null;default:''" json:"registration_number"`
	LogoURL            string          `gorm:"not null;default:''" json:"logo_url"`
	FooterText         string          `gorm:"not null;default:''" json:"footer_text"`
	TaxRate            decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"tax_rate"`
	Currency           string          `gorm:"type:varchar(3);not null" json:"currency"`
	Language           string          `gorm:"type:varchar(8);not null" json:"language"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// StoreSettingsID is the primary key of the only settings row.
const StoreSettingsID = 1

package dto

import "github.com/shopspring/decimal"

type SettingsRequest struct {
	Name               string          `json:"name"                validate:"required,min=1,max=120"`
	OwnerName          string          `json:"owner_name"`
	Phone              string          `json:"phone"`
	RegistrationNumber string          `json:"registration_number"`
	LogoURL            string          `json:"logo_url"            validate:"omitempty,url"`
	FooterText         string          `json:"footer_text"         validate:"max=500"`
	TaxRate            decimal.Decimal `json:"tax_rate"            validate:"min=0,max=100"`
	Currency           string          `json:"currency"            validate:"required,len=3"`
	Language           string          `json:"language"            validate:"required,oneof=en ar fr es de"`
}

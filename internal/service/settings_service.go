package service

import (
	"context"
	"strings"

	"nedpos/internal/config"
	"nedpos/internal/dto"
	"nedpos/internal/i18n"
	"nedpos/internal/model"
	"nedpos/internal/repository"

	"github.com/shopspring/decimal"
)

type SettingsService interface {
	// Get returns the saved store profile, or the configured defaults when
	// nothing was saved yet.
	Get(ctx context.Context) (*model.StoreSettings, error)
	Update(ctx context.Context, req dto.SettingsRequest) (*model.StoreSettings, error)
}

type settingsService struct {
	repo     repository.SettingsRepository
	defaults model.StoreSettings
}

func NewSettingsService(repo repository.SettingsRepository, cfg *config.Config) SettingsService {
	return &settingsService{
		repo: repo,
		defaults: model.StoreSettings{
			ID:       model.StoreSettingsID,
			Name:     cfg.StoreName,
			TaxRate:  decimal.NewFromFloat(cfg.StoreTaxRate),
			Currency: strings.ToUpper(cfg.StoreCurrency),
			Language: i18n.DetectLanguage(cfg.StoreLanguage),
		},
	}
}

func (s *settingsService) Get(ctx context.Context) (*model.StoreSettings, error) {
	st, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if st == nil {
		d := s.defaults
		return &d, nil
	}
	return st, nil
}

func (s *settingsService) Update(ctx context.Context, req dto.SettingsRequest) (*model.StoreSettings, error) {
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if !i18n.ValidCurrency(currency) {
		return nil, ErrInvalidCurrency
	}
	st := &model.StoreSettings{
		Name:               strings.TrimSpace(req.Name),
		OwnerName:          req.OwnerName,
		Phone:              req.Phone,
		RegistrationNumber: req.RegistrationNumber,
		LogoURL:            req.LogoURL,
		FooterText:         req.FooterText,
		TaxRate:            req.TaxRate,
		Currency:           currency,
		Language:           req.Language,
	}
	if err := s.repo.Save(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

package repository

import (
	"context"
	"errors"

	"nedpos/internal/model"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	// Get returns the stored settings, or nil when none were saved yet.
	Get(ctx context.Context) (*model.StoreSettings, error)
	Save(ctx context.Context, s *model.StoreSettings) error
}

type settingsRepo struct{ db *gorm.DB }

func NewSettingsRepository(db *gorm.DB) SettingsRepository { return &settingsRepo{db: db} }

func (r *settingsRepo) Get(ctx context.Context) (*model.StoreSettings, error) {
	var s model.StoreSettings
	err := r.db.WithContext(ctx).Where("id = ?", model.StoreSettingsID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *settingsRepo) Save(ctx context.Context, s *model.StoreSettings) error {
	s.ID = model.StoreSettingsID
	return r.db.WithContext(ctx).Save(s).Error
}

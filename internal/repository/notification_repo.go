package repository

import (
	"context"

	"nedpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	CreateTx(tx *gorm.DB, n *model.Notification) error
	List(ctx context.Context, unreadOnly bool) ([]model.Notification, error)
	// HasUnreadForProduct avoids stacking duplicate low-stock alerts.
	HasUnreadForProduct(tx *gorm.DB, productID uuid.UUID, kind string) (bool, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context) (int64, error)
}

type notificationRepo struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) CreateTx(tx *gorm.DB, n *model.Notification) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(n).Error
}

func (r *notificationRepo) List(ctx context.Context, unreadOnly bool) ([]model.Notification, error) {
	var out []model.Notification
	q := r.db.WithContext(ctx)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	err := q.Order("created_at DESC").Limit(200).Find(&out).Error
	return out, err
}

func (r *notificationRepo) HasUnreadForProduct(tx *gorm.DB, productID uuid.UUID, kind string) (bool, error) {
	if tx == nil {
		tx = r.db
	}
	var n int64
	err := tx.Model(&model.Notification{}).
		Where("product_id = ? AND type = ? AND read = ?", productID, kind, false).
		Count(&n).Error
	return n > 0, err
}

func (r *notificationRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.Notification{}).Where("id = ?", id).Update("read", true)
	if res.Error == nil && res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return res.Error
}

func (r *notificationRepo) MarkAllRead(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Notification{}).Where("read = ?", false).Update("read", true)
	return res.RowsAffected, res.Error
}

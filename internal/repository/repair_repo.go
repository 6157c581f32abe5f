package repository

import (
	"context"

	"nedpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RepairRepository interface {
	Create(ctx context.Context, r *model.Repair) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Repair, error)
	List(ctx context.Context, status string) ([]model.Repair, error)
	CountOpen(ctx context.Context) (int64, error)
	Update(ctx context.Context, r *model.Repair) error
}

type repairRepo struct{ db *gorm.DB }

func NewRepairRepository(db *gorm.DB) RepairRepository { return &repairRepo{db: db} }

func (r *repairRepo) Create(ctx context.Context, rep *model.Repair) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *repairRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Repair, error) {
	var rep model.Repair
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rep).Error
	return &rep, err
}

func (r *repairRepo) List(ctx context.Context, status string) ([]model.Repair, error) {
	var repairs []model.Repair
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("received_at DESC").Find(&repairs).Error
	return repairs, err
}

// CountOpen counts repairs not yet handed back to the customer.
func (r *repairRepo) CountOpen(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Repair{}).
		Where("status <> ?", model.RepairCompleted).Count(&n).Error
	return n, err
}

func (r *repairRepo) Update(ctx context.Context, rep *model.Repair) error {
	return r.db.WithContext(ctx).Save(rep).Error
}

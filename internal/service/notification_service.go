package service

import (
	"context"

	"nedpos/internal/model"
	"nedpos/internal/repository"

	"github.com/google/uuid"
)

type NotificationService interface {
	List(ctx context.Context, unreadOnly bool) ([]model.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context) (int64, error)
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) List(ctx context.Context, unreadOnly bool) ([]model.Notification, error) {
	return s.repo.List(ctx, unreadOnly)
}

func (s *notificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	return notFound(s.repo.MarkRead(ctx, id), ErrNotificationNotFound)
}

func (s *notificationService) MarkAllRead(ctx context.Context) (int64, error) {
	return s.repo.MarkAllRead(ctx)
}

package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskmgr-io/taskmgr/internal/modules/model"
	"github.com/taskmgr-io/taskmgr/internal/modules/repo"
)

type NotificationService interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type notificationService struct {
	notifications repo.NotificationRepo
}

func NewNotificationService(notifications repo.NotificationRepo) NotificationService {
	return &notificationService{notifications: notifications}
}

func (s *notificationService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

// MarkAllRead is idempotent; marking an already-empty unread set is a no-op.
func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifications.MarkAllRead(ctx, userID)
}

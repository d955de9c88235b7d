package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskmgr-io/taskmgr/internal/modules/model"
	"github.com/taskmgr-io/taskmgr/internal/modules/repo"
)

type HistoryService interface {
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.History, error)
	ListAll(ctx context.Context) ([]model.History, error)
}

type historyService struct {
	history repo.HistoryRepo
}

func NewHistoryService(history repo.HistoryRepo) HistoryService {
	return &historyService{history: history}
}

func (s *historyService) ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.History, error) {
	return s.history.ListByTask(ctx, taskID)
}

func (s *historyService) ListAll(ctx context.Context) ([]model.History, error) {
	return s.history.ListAll(ctx)
}

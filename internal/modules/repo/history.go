package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskmgr-io/taskmgr/internal/modules/model"
	"gorm.io/gorm"
)

// allHistoryLimit caps the global history read; the table itself grows
// unboundedly.
const allHistoryLimit = 100

type HistoryRepo interface {
	Create(ctx context.Context, h *model.History) error
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.History, error)
	ListAll(ctx context.Context) ([]model.History, error)
}

type historyRepo struct{ db *gorm.DB }

func NewHistoryRepo(db *gorm.DB) HistoryRepo {
	return &historyRepo{db: db}
}

func withActor(q *gorm.DB) *gorm.DB {
	return q.Preload("User", func(db *gorm.DB) *gorm.DB { return db.Select("id", "username") })
}

func (r *historyRepo) Create(ctx context.Context, h *model.History) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *historyRepo) ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.History, error) {
	var items []model.History
	return items, withActor(r.db.WithContext(ctx)).
		Where("task_id = ?", taskID).
		Order("timestamp DESC").
		Find(&items).Error
}

func (r *historyRepo) ListAll(ctx context.Context) ([]model.History, error) {
	var items []model.History
	// LEFT JOIN: rows whose task was deleted keep an empty title.
	return items, withActor(r.db.WithContext(ctx).Model(&model.History{})).
		Select("histories.*, COALESCE(tasks.title, '') AS task_title").
		Joins("LEFT JOIN tasks ON tasks.id = histories.task_id").
		Order("histories.timestamp DESC").
		Limit(allHistoryLimit).
		Find(&items).Error
}

package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskmgr-io/taskmgr/internal/modules/model"
	"gorm.io/gorm"
)

type CommentRepo interface {
	Create(ctx context.Context, c *model.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Comment, error)
}

type commentRepo struct{ db *gorm.DB }

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &commentRepo{db: db}
}

func withCommentAuthor(q *gorm.DB) *gorm.DB {
	return q.Preload("User", func(db *gorm.DB) *gorm.DB { return db.Select("id", "username") })
}

func (r *commentRepo) Create(ctx context.Context, c *model.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *commentRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	var c model.Comment
	return &c, withCommentAuthor(r.db.WithContext(ctx)).Where("id = ?", id).First(&c).Error
}

func (r *commentRepo) ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Comment, error) {
	var comments []model.Comment
	return comments, withCommentAuthor(r.db.WithContext(ctx)).
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&comments).Error
}

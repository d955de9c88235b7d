package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskmgr-io/taskmgr/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SearchFilter holds the optional conjunctive predicates of the search
// endpoint. Zero values mean "no filter".
type SearchFilter struct {
	Text      string
	Status    model.TaskStatus
	Priority  model.TaskPriority
	ProjectID *uuid.UUID
}

type TaskRepo interface {
	Create(ctx context.Context, t *model.Task) error
	Save(ctx context.Context, t *model.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context) ([]model.Task, error)
	Search(ctx context.Context, f SearchFilter) ([]model.Task, error)
	ListAll(ctx context.Context) ([]model.Task, error)
}

type taskRepo struct{ db *gorm.DB }

func NewTaskRepo(db *gorm.DB) TaskRepo {
	return &taskRepo{db: db}
}

// withRefs resolves the task's references with whitelisted columns
// only; the assignee's password hash never leaves the store.
func withRefs(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Project", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name") }).
		Preload("Assignee", func(db *gorm.DB) *gorm.DB { return db.Select("id", "username") }).
		Preload("Creator", func(db *gorm.DB) *gorm.DB { return db.Select("id", "username") })
}

func (r *taskRepo) Create(ctx context.Context, t *model.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(t).Error
}

func (r *taskRepo) Save(ctx context.Context, t *model.Task) error {
	// Associations are read-only projections; only task columns persist.
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(t).Error
}

func (r *taskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Task{ID: id}).Error
}

func (r *taskRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var t model.Task
	return &t, withRefs(r.db.WithContext(ctx)).Where("id = ?", id).First(&t).Error
}

func (r *taskRepo) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	return tasks, withRefs(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&tasks).Error
}

func (r *taskRepo) Search(ctx context.Context, f SearchFilter) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{})

	if f.Text != "" {
		pattern := "%" + f.Text + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.ProjectID != nil {
		q = q.Where("project_id = ?", *f.ProjectID)
	}

	var tasks []model.Task
	return tasks, withRefs(q).Order("created_at DESC").Find(&tasks).Error
}

// ListAll returns every task without resolving references; used by the
// stats and report scans.
func (r *taskRepo) ListAll(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	return tasks, r.db.WithContext(ctx).Find(&tasks).Error
}

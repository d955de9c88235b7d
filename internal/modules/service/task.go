package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskmgr-io/taskmgr/internal/infra/cache"
	"github.com/taskmgr-io/taskmgr/internal/modules/model"
	"github.com/taskmgr-io/taskmgr/internal/modules/repo"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ErrBadProjectID marks a search projectId that is neither a UUID nor
// the "0" sentinel.
var ErrBadProjectID = errors.New("project id no válido")

// CreateTaskInput is the accepted field set for task creation. The
// creator always comes from the authenticated caller, never from the
// payload.
type CreateTaskInput struct {
	Title          string
	Description    string
	Status         model.TaskStatus
	Priority       model.TaskPriority
	ProjectID      *uuid.UUID
	AssignedTo     *uuid.UUID
	DueDate        *time.Time
	EstimatedHours float64
	ActualHours    float64
}

// UpdateTaskInput is a partial field set; nil pointers leave the field
// unchanged.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	Status         *model.TaskStatus
	Priority       *model.TaskPriority
	ProjectID      *uuid.UUID
	AssignedTo     *uuid.UUID
	DueDate        *time.Time
	EstimatedHours *float64
	ActualHours    *float64
}

// SearchInput holds the raw query predicates. ProjectID "0" is the
// legacy client's "no filter" sentinel.
type SearchInput struct {
	Text      string
	Status    string
	Priority  string
	ProjectID string
}

// TaskStats is the aggregate the dashboard polls. Pending counts every
// non-completed task, overdue requires a past due date on a
// non-completed task.
type TaskStats struct {
	Total        int `json:"total"`
	Completed    int `json:"completed"`
	Pending      int `json:"pending"`
	HighPriority int `json:"highPriority"`
	Overdue      int `json:"overdue"`
}

type TaskService interface {
	Create(ctx context.Context, in CreateTaskInput, actor *model.User) (*model.Task, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateTaskInput, actor *model.User) (*model.Task, error)
	Delete(ctx context.Context, id uuid.UUID, actor *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context) ([]model.Task, error)
	Search(ctx context.Context, in SearchInput) ([]model.Task, error)
	Stats(ctx context.Context) (*TaskStats, error)
}

type taskService struct {
	tasks         repo.TaskRepo
	history       repo.HistoryRepo
	notifications repo.NotificationRepo
	stats         *cache.StatsCache
	log           *zap.Logger
}

func NewTaskService(tasks repo.TaskRepo, history repo.HistoryRepo, notifications repo.NotificationRepo, stats *cache.StatsCache, log *zap.Logger) TaskService {
	return &taskService{
		tasks:         tasks,
		history:       history,
		notifications: notifications,
		stats:         stats,
		log:           log,
	}
}

// record appends a history row. Derived side effects never fail the
// request; failures are logged and swallowed.
func (s *taskService) record(ctx context.Context, h *model.History) {
	if err := s.history.Create(ctx, h); err != nil {
		s.log.Sugar().Warnw("append history failed",
			"taskId", h.TaskID, "action", h.Action, "err", err)
	}
}

// notify creates a notification, best-effort like record.
func (s *taskService) notify(ctx context.Context, userID uuid.UUID, msg string, typ model.NotificationType, taskID uuid.UUID) {
	n := &model.Notification{
		UserID:  userID,
		Message: msg,
		Type:    typ,
		Data:    datatypes.JSONMap{"taskId": taskID.String()},
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		s.log.Sugar().Warnw("create notification failed",
			"userId", userID, "type", typ, "err", err)
	}
}

func (s *taskService) invalidateStats(ctx context.Context) {
	if s.stats == nil {
		return
	}
	if err := s.stats.Invalidate(ctx); err != nil {
		s.log.Sugar().Debugw("invalidate stats cache failed", "err", err)
	}
}

func (s *taskService) Create(ctx context.Context, in CreateTaskInput, actor *model.User) (*model.Task, error) {
	task := &model.Task{
		Title:          in.Title,
		Description:    in.Description,
		Status:         in.Status,
		Priority:       in.Priority,
		ProjectID:      in.ProjectID,
		AssignedTo:     in.AssignedTo,
		CreatedBy:      actor.ID,
		DueDate:        in.DueDate,
		EstimatedHours: in.EstimatedHours,
		ActualHours:    in.ActualHours,
	}
	if task.Status == "" {
		task.Status = model.StatusPendiente
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedia
	}

	// The primary write is the only request-fatal operation.
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.record(ctx, &model.History{
		TaskID:   task.ID,
		UserID:   actor.ID,
		Action:   model.ActionCreated,
		NewValue: task.Title,
	})

	s.notify(ctx, actor.ID, fmt.Sprintf("Has creado la tarea: %s", task.Title), model.NotifTaskCreated, task.ID)
	if task.AssignedTo != nil && *task.AssignedTo != actor.ID {
		s.notify(ctx, *task.AssignedTo, fmt.Sprintf("Nueva tarea asignada: %s", task.Title), model.NotifTaskAssigned, task.ID)
	}

	s.invalidateStats(ctx)

	return s.tasks.GetByID(ctx, task.ID)
}

func (s *taskService) Update(ctx context.Context, id uuid.UUID, in UpdateTaskInput, actor *model.User) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := task.Status
	oldTitle := task.Title

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.ProjectID != nil {
		task.ProjectID = in.ProjectID
	}
	if in.AssignedTo != nil {
		task.AssignedTo = in.AssignedTo
	}
	if in.DueDate != nil {
		task.DueDate = in.DueDate
	}
	if in.EstimatedHours != nil {
		task.EstimatedHours = *in.EstimatedHours
	}
	if in.ActualHours != nil {
		task.ActualHours = *in.ActualHours
	}

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}

	// Status and title diffs are independent; both rows may be written
	// for the same update.
	if oldStatus != task.Status {
		s.record(ctx, &model.History{
			TaskID:   task.ID,
			UserID:   actor.ID,
			Action:   model.ActionStatusChanged,
			OldValue: string(oldStatus),
			NewValue: string(task.Status),
		})
	}
	if oldTitle != task.Title {
		s.record(ctx, &model.History{
			TaskID:   task.ID,
			UserID:   actor.ID,
			Action:   model.ActionTitleChanged,
			OldValue: oldTitle,
			NewValue: task.Title,
		})
	}

	s.notify(ctx, actor.ID, fmt.Sprintf("Has actualizado la tarea: %s", task.Title), model.NotifTaskUpdated, task.ID)
	if task.AssignedTo != nil && *task.AssignedTo != actor.ID {
		s.notify(ctx, *task.AssignedTo, fmt.Sprintf("Tarea actualizada: %s", task.Title), model.NotifTaskUpdated, task.ID)
	}

	s.invalidateStats(ctx)

	return s.tasks.GetByID(ctx, task.ID)
}

func (s *taskService) Delete(ctx context.Context, id uuid.UUID, actor *model.User) error {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// The DELETED row must be written first: it captures the title,
	// which is unrecoverable once the task row is gone.
	s.record(ctx, &model.History{
		TaskID:   task.ID,
		UserID:   actor.ID,
		Action:   model.ActionDeleted,
		OldValue: task.Title,
		NewValue: "",
	})

	if err := s.tasks.Delete(ctx, task.ID); err != nil {
		return err
	}

	s.invalidateStats(ctx)
	return nil
}

func (s *taskService) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) List(ctx context.Context) ([]model.Task, error) {
	return s.tasks.List(ctx)
}

func (s *taskService) Search(ctx context.Context, in SearchInput) ([]model.Task, error) {
	f := repo.SearchFilter{
		Text:     in.Text,
		Status:   model.TaskStatus(in.Status),
		Priority: model.TaskPriority(in.Priority),
	}

	// "0" is the legacy client's sentinel for "all projects".
	if in.ProjectID != "" && in.ProjectID != "0" {
		pid, err := uuid.Parse(in.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadProjectID, in.ProjectID)
		}
		f.ProjectID = &pid
	}

	return s.tasks.Search(ctx, f)
}

func (s *taskService) Stats(ctx context.Context) (*TaskStats, error) {
	if s.stats != nil {
		var cached TaskStats
		hit, err := s.stats.Get(ctx, &cached)
		if err != nil {
			s.log.Sugar().Debugw("read stats cache failed", "err", err)
		} else if hit {
			return &cached, nil
		}
	}

	tasks, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stats := &TaskStats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Status == model.StatusCompletada {
			stats.Completed++
		} else {
			stats.Pending++
		}
		if t.Priority == model.PriorityAlta || t.Priority == model.PriorityCritica {
			stats.HighPriority++
		}
		if t.DueDate != nil && t.Status != model.StatusCompletada && t.DueDate.Before(now) {
			stats.Overdue++
		}
	}

	if s.stats != nil {
		if err := s.stats.Set(ctx, stats); err != nil {
			s.log.Sugar().Debugw("write stats cache failed", "err", err)
		}
	}
	return stats, nil
}

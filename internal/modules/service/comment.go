package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/taskmgr-io/taskmgr/internal/modules/model"
	"github.com/taskmgr-io/taskmgr/internal/modules/repo"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// CreateCommentInput is the accepted field set for a new comment. The
// author always comes from the authenticated caller.
type CreateCommentInput struct {
	TaskID      uuid.UUID
	CommentText string
}

type CommentService interface {
	Create(ctx context.Context, in CreateCommentInput, actor *model.User) (*model.Comment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Comment, error)
}

type commentService struct {
	comments      repo.CommentRepo
	tasks         repo.TaskRepo
	history       repo.HistoryRepo
	notifications repo.NotificationRepo
	log           *zap.Logger
}

func NewCommentService(comments repo.CommentRepo, tasks repo.TaskRepo, history repo.HistoryRepo, notifications repo.NotificationRepo, log *zap.Logger) CommentService {
	return &commentService{
		comments:      comments,
		tasks:         tasks,
		history:       history,
		notifications: notifications,
		log:           log,
	}
}

func (s *commentService) Create(ctx context.Context, in CreateCommentInput, actor *model.User) (*model.Comment, error) {
	comment := &model.Comment{
		TaskID:      in.TaskID,
		UserID:      actor.ID,
		CommentText: in.CommentText,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Side effects are best-effort. The assignee is notified even when
	// they are the commenter; there is no self-suppression here.
	if task, err := s.tasks.GetByID(ctx, in.TaskID); err != nil {
		s.log.Sugar().Warnw("load task for comment side effects failed",
			"taskId", in.TaskID, "err", err)
	} else {
		if task.AssignedTo != nil {
			n := &model.Notification{
				UserID:  *task.AssignedTo,
				Message: fmt.Sprintf("Nuevo comentario en la tarea: %s", task.Title),
				Type:    model.NotifCommentAdded,
				Data:    datatypes.JSONMap{"taskId": task.ID.String()},
			}
			if err := s.notifications.Create(ctx, n); err != nil {
				s.log.Sugar().Warnw("create notification failed",
					"userId", *task.AssignedTo, "type", model.NotifCommentAdded, "err", err)
			}
		}

		h := &model.History{
			TaskID:   task.ID,
			UserID:   actor.ID,
			Action:   model.ActionCommentAdded,
			NewValue: "Nuevo comentario",
		}
		if err := s.history.Create(ctx, h); err != nil {
			s.log.Sugar().Warnw("append history failed",
				"taskId", task.ID, "action", h.Action, "err", err)
		}
	}

	return s.comments.GetByID(ctx, comment.ID)
}

func (s *commentService) ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Comment, error) {
	return s.comments.ListByTask(ctx, taskID)
}

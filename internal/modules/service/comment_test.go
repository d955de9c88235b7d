package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/taskmgr-io/taskmgr/internal/modules/model"
	"go.uber.org/zap"
)

// MockCommentRepo is a mock implementation of CommentRepo
type MockCommentRepo struct {
	mock.Mock
}

func (m *MockCommentRepo) Create(ctx context.Context, c *model.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepo) ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Comment, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

func TestCommentService_Create(t *testing.T) {
	ctx := context.Background()
	actor := &model.User{ID: uuid.New(), Username: "user1"}
	taskID := uuid.New()

	tests := []struct {
		name    string
		setup   func(*MockCommentRepo, *MockTaskRepo, *MockHistoryRepo, *MockNotificationRepo)
		wantErr bool
	}{
		{
			name: "assignee is notified and history appended",
			setup: func(comments *MockCommentRepo, tasks *MockTaskRepo, history *MockHistoryRepo, notifs *MockNotificationRepo) {
				assignee := uuid.New()
				comments.On("Create", ctx, mock.MatchedBy(func(c *model.Comment) bool {
					return c.TaskID == taskID && c.UserID == actor.ID
				})).Return(nil)
				tasks.On("GetByID", ctx, taskID).Return(&model.Task{
					ID: taskID, Title: "Tarea comentada", AssignedTo: &assignee,
				}, nil)
				notifs.On("Create", ctx, mock.MatchedBy(func(n *model.Notification) bool {
					return n.UserID == assignee &&
						n.Type == model.NotifCommentAdded &&
						n.Message == "Nuevo comentario en la tarea: Tarea comentada"
				})).Return(nil).Once()
				history.On("Create", ctx, mock.MatchedBy(func(h *model.History) bool {
					return h.Action == model.ActionCommentAdded && h.NewValue == "Nuevo comentario"
				})).Return(nil).Once()
				comments.On("GetByID", ctx, mock.AnythingOfType("uuid.UUID")).Return(&model.Comment{TaskID: taskID}, nil)
			},
		},
		{
			name: "assignee commenting on their own task is still notified",
			setup: func(comments *MockCommentRepo, tasks *MockTaskRepo, history *MockHistoryRepo, notifs *MockNotificationRepo) {
				comments.On("Create", ctx, mock.AnythingOfType("*model.Comment")).Return(nil)
				tasks.On("GetByID", ctx, taskID).Return(&model.Task{
					ID: taskID, Title: "Tarea propia", AssignedTo: &actor.ID,
				}, nil)
				notifs.On("Create", ctx, mock.MatchedBy(func(n *model.Notification) bool {
					return n.UserID == actor.ID
				})).Return(nil).Once()
				history.On("Create", ctx, mock.AnythingOfType("*model.History")).Return(nil)
				comments.On("GetByID", ctx, mock.AnythingOfType("uuid.UUID")).Return(&model.Comment{TaskID: taskID}, nil)
			},
		},
		{
			name: "unassigned task skips the notification but keeps history",
			setup: func(comments *MockCommentRepo, tasks *MockTaskRepo, history *MockHistoryRepo, notifs *MockNotificationRepo) {
				comments.On("Create", ctx, mock.AnythingOfType("*model.Comment")).Return(nil)
				tasks.On("GetByID", ctx, taskID).Return(&model.Task{ID: taskID, Title: "Sin dueño"}, nil)
				history.On("Create", ctx, mock.AnythingOfType("*model.History")).Return(nil).Once()
				comments.On("GetByID", ctx, mock.AnythingOfType("uuid.UUID")).Return(&model.Comment{TaskID: taskID}, nil)
			},
		},
		{
			name: "task load failure is swallowed after a successful insert",
			setup: func(comments *MockCommentRepo, tasks *MockTaskRepo, history *MockHistoryRepo, notifs *MockNotificationRepo) {
				comments.On("Create", ctx, mock.AnythingOfType("*model.Comment")).Return(nil)
				tasks.On("GetByID", ctx, taskID).Return(nil, errors.New("record not found"))
				comments.On("GetByID", ctx, mock.AnythingOfType("uuid.UUID")).Return(&model.Comment{TaskID: taskID}, nil)
			},
		},
		{
			name: "insert failure aborts",
			setup: func(comments *MockCommentRepo, tasks *MockTaskRepo, history *MockHistoryRepo, notifs *MockNotificationRepo) {
				comments.On("Create", ctx, mock.AnythingOfType("*model.Comment")).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comments := &MockCommentRepo{}
			tasks := &MockTaskRepo{}
			history := &MockHistoryRepo{}
			notifs := &MockNotificationRepo{}
			tt.setup(comments, tasks, history, notifs)

			svc := NewCommentService(comments, tasks, history, notifs, zap.NewNop())
			result, err := svc.Create(ctx, CreateCommentInput{TaskID: taskID, CommentText: "Un comentario"}, actor)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
			}

			comments.AssertExpectations(t)
			tasks.AssertExpectations(t)
			history.AssertExpectations(t)
			notifs.AssertExpectations(t)
		})
	}
}

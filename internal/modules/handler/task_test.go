package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/taskmgr-io/taskmgr/internal/modules/model"
	"github.com/taskmgr-io/taskmgr/internal/modules/service"
	"gorm.io/gorm"
)

// MockTaskService is a mock implementation of TaskService
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, in service.CreateTaskInput, actor *model.User) (*model.Task, error) {
	args := m.Called(ctx, in, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, id uuid.UUID, in service.UpdateTaskInput, actor *model.User) (*model.Task, error) {
	args := m.Called(ctx, id, in, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, id uuid.UUID, actor *model.User) error {
	args := m.Called(ctx, id, actor)
	return args.Error(0)
}

func (m *MockTaskService) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) List(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskService) Search(ctx context.Context, in service.SearchInput) ([]model.Task, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskService) Stats(ctx context.Context) (*service.TaskStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TaskStats), args.Error(1)
}

func setupTaskRouter(h *TaskHandler, actor *model.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user", actor) })
	r.GET("/tasks", h.GetTasks)
	r.POST("/tasks", h.CreateTask)
	r.GET("/tasks/stats", h.GetTaskStats)
	r.GET("/tasks/:id", h.GetTaskByID)
	r.PUT("/tasks/:id", h.UpdateTask)
	r.DELETE("/tasks/:id", h.DeleteTask)
	return r
}

func TestTaskHandler_GetTaskByID(t *testing.T) {
	actor := &model.User{ID: uuid.New(), Username: "admin"}
	taskID := uuid.New()

	tests := []struct {
		name           string
		path           string
		setup          func(*MockTaskService)
		expectedStatus int
	}{
		{
			name: "existing task",
			path: "/tasks/" + taskID.String(),
			setup: func(svc *MockTaskService) {
				svc.On("GetByID", mock.Anything, taskID).Return(&model.Task{ID: taskID, Title: "Tarea"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "missing task",
			path: "/tasks/" + taskID.String(),
			setup: func(svc *MockTaskService) {
				svc.On("GetByID", mock.Anything, taskID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "malformed id",
			path:           "/tasks/not-a-uuid",
			setup:          func(svc *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockTaskService{}
			tt.setup(mockService)

			router := setupTaskRouter(NewTaskHandler(mockService), actor)
			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_CreateTask(t *testing.T) {
	actor := &model.User{ID: uuid.New(), Username: "admin"}

	tests := []struct {
		name           string
		body           interface{}
		setup          func(*MockTaskService)
		expectedStatus int
	}{
		{
			name: "successful creation",
			body: CreateTaskReq{Title: "Nueva tarea"},
			setup: func(svc *MockTaskService) {
				svc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateTaskInput) bool {
					return in.Title == "Nueva tarea"
				}), actor).Return(&model.Task{Title: "Nueva tarea"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "title too short",
			body:           map[string]string{"title": "ab"},
			setup:          func(svc *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid status enum",
			body:           map[string]string{"title": "Nueva tarea", "status": "Terminada"},
			setup:          func(svc *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "dangling project reference",
			body: CreateTaskReq{Title: "Nueva tarea"},
			setup: func(svc *MockTaskService) {
				svc.On("Create", mock.Anything, mock.Anything, actor).Return(nil, gorm.ErrForeignKeyViolated)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockTaskService{}
			tt.setup(mockService)

			router := setupTaskRouter(NewTaskHandler(mockService), actor)
			payload, _ := sonic.Marshal(tt.body)
			req := httptest.NewRequest("POST", "/tasks", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	actor := &model.User{ID: uuid.New()}
	taskID := uuid.New()

	t.Run("partial update passes only the given fields", func(t *testing.T) {
		mockService := &MockTaskService{}
		mockService.On("Update", mock.Anything, taskID, mock.MatchedBy(func(in service.UpdateTaskInput) bool {
			return in.Status != nil && *in.Status == model.StatusCompletada &&
				in.Title == nil && in.Priority == nil
		}), actor).Return(&model.Task{ID: taskID}, nil)

		router := setupTaskRouter(NewTaskHandler(mockService), actor)
		payload := []byte(`{"status":"Completada"}`)
		req := httptest.NewRequest("PUT", "/tasks/"+taskID.String(), bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("missing task", func(t *testing.T) {
		mockService := &MockTaskService{}
		mockService.On("Update", mock.Anything, taskID, mock.Anything, actor).Return(nil, gorm.ErrRecordNotFound)

		router := setupTaskRouter(NewTaskHandler(mockService), actor)
		req := httptest.NewRequest("PUT", "/tasks/"+taskID.String(), bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	actor := &model.User{ID: uuid.New()}
	taskID := uuid.New()

	tests := []struct {
		name           string
		setup          func(*MockTaskService)
		expectedStatus int
	}{
		{
			name: "successful deletion",
			setup: func(svc *MockTaskService) {
				svc.On("Delete", mock.Anything, taskID, actor).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "missing task",
			setup: func(svc *MockTaskService) {
				svc.On("Delete", mock.Anything, taskID, actor).Return(gorm.ErrRecordNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockTaskService{}
			tt.setup(mockService)

			router := setupTaskRouter(NewTaskHandler(mockService), actor)
			req := httptest.NewRequest("DELETE", "/tasks/"+taskID.String(), nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_GetTaskStats(t *testing.T) {
	actor := &model.User{ID: uuid.New()}

	tests := []struct {
		name           string
		setup          func(*MockTaskService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "stats returned",
			setup: func(svc *MockTaskService) {
				svc.On("Stats", mock.Anything).Return(&service.TaskStats{
					Total: 5, Completed: 2, Pending: 3, HighPriority: 1, Overdue: 1,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"highPriority":1`,
		},
		{
			name: "store failure",
			setup: func(svc *MockTaskService) {
				svc.On("Stats", mock.Anything).Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockTaskService{}
			tt.setup(mockService)

			router := setupTaskRouter(NewTaskHandler(mockService), actor)
			req := httptest.NewRequest("GET", "/tasks/stats", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			mockService.AssertExpectations(t)
		})
	}
}

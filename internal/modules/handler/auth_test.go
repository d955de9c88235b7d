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
	"github.com/taskmgr-io/taskmgr/internal/modules/serializer"
	"github.com/taskmgr-io/taskmgr/internal/modules/service"
)

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, username, password string, role model.Role) (*service.AuthResult, error) {
	args := m.Called(ctx, username, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setup          func(*MockAuthService)
		expectedStatus int
	}{
		{
			name: "successful login",
			body: LoginReq{Username: "admin", Password: "admin123"},
			setup: func(svc *MockAuthService) {
				svc.On("Login", mock.Anything, "admin", "admin123").Return(&service.AuthResult{
					Token: "token",
					User:  model.User{ID: uuid.New(), Username: "admin"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "invalid credentials",
			body: LoginReq{Username: "admin", Password: "wrong"},
			setup: func(svc *MockAuthService) {
				svc.On("Login", mock.Anything, "admin", "wrong").Return(nil, service.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing fields",
			body:           map[string]string{"username": "admin"},
			setup:          func(svc *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "store failure",
			body: LoginReq{Username: "admin", Password: "admin123"},
			setup: func(svc *MockAuthService) {
				svc.On("Login", mock.Anything, "admin", "admin123").Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockAuthService{}
			tt.setup(mockService)

			handler := NewAuthHandler(mockService)
			router := setupAuthRouter()
			router.POST("/auth/login", handler.Login)

			payload, _ := sonic.Marshal(tt.body)
			req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp serializer.Response
			assert.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedStatus == http.StatusOK, resp.Success)

			mockService.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setup          func(*MockAuthService)
		expectedStatus int
	}{
		{
			name: "successful registration",
			body: RegisterReq{Username: "nuevo", Password: "secreto1"},
			setup: func(svc *MockAuthService) {
				svc.On("Register", mock.Anything, "nuevo", "secreto1", model.Role("")).Return(&service.AuthResult{
					Token: "token",
					User:  model.User{ID: uuid.New(), Username: "nuevo", Role: model.RoleUser},
				}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate username",
			body: RegisterReq{Username: "admin", Password: "secreto1"},
			setup: func(svc *MockAuthService) {
				svc.On("Register", mock.Anything, "admin", "secreto1", model.Role("")).Return(nil, service.ErrDuplicateUsername)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "short password rejected before the service runs",
			body:           RegisterReq{Username: "nuevo", Password: "abc"},
			setup:          func(svc *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid role rejected",
			body:           map[string]string{"username": "nuevo", "password": "secreto1", "role": "superuser"},
			setup:          func(svc *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockAuthService{}
			tt.setup(mockService)

			handler := NewAuthHandler(mockService)
			router := setupAuthRouter()
			router.POST("/auth/register", handler.Register)

			payload, _ := sonic.Marshal(tt.body)
			req := httptest.NewRequest("POST", "/auth/register", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	user := &model.User{ID: uuid.New(), Username: "admin", Role: model.RoleAdmin}

	handler := NewAuthHandler(&MockAuthService{})
	router := setupAuthRouter()
	router.GET("/auth/me", func(c *gin.Context) {
		c.Set("user", user)
		handler.Me(c)
	})

	req := httptest.NewRequest("GET", "/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin")
}

func TestAuthHandler_ListUsers(t *testing.T) {
	tests := []struct {
		name           string
		setup          func(*MockAuthService)
		expectedStatus int
	}{
		{
			name: "successful listing",
			setup: func(svc *MockAuthService) {
				svc.On("ListUsers", mock.Anything).Return([]model.User{
					{ID: uuid.New(), Username: "admin"},
					{ID: uuid.New(), Username: "user1"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "store failure",
			setup: func(svc *MockAuthService) {
				svc.On("ListUsers", mock.Anything).Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockAuthService{}
			tt.setup(mockService)

			handler := NewAuthHandler(mockService)
			router := setupAuthRouter()
			router.GET("/auth/users", handler.ListUsers)

			req := httptest.NewRequest("GET", "/auth/users", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/taskmgr-io/taskmgr/internal/modules/model"
	"github.com/taskmgr-io/taskmgr/internal/pkg/auth"
	"gorm.io/gorm"
)

// MockUserRepo is a mock implementation of UserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func newTestAuthService(users *MockUserRepo) AuthService {
	hasher := auth.NewPasswordHasher()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(users, hasher, tokens)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hasher := auth.NewPasswordHasher()
	hash, err := hasher.Hash("admin123")
	assert.NoError(t, err)

	stored := &model.User{
		ID:       uuid.New(),
		Username: "admin",
		Password: hash,
		Role:     model.RoleAdmin,
	}

	tests := []struct {
		name     string
		username string
		password string
		setup    func(*MockUserRepo)
		wantErr  error
	}{
		{
			name:     "successful login",
			username: "admin",
			password: "admin123",
			setup: func(users *MockUserRepo) {
				users.On("GetByUsername", ctx, "admin").Return(stored, nil)
			},
		},
		{
			name:     "wrong password",
			username: "admin",
			password: "wrong",
			setup: func(users *MockUserRepo) {
				users.On("GetByUsername", ctx, "admin").Return(stored, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "unknown username maps to the same error",
			username: "nobody",
			password: "admin123",
			setup: func(users *MockUserRepo) {
				users.On("GetByUsername", ctx, "nobody").Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "store failure propagates",
			username: "admin",
			password: "admin123",
			setup: func(users *MockUserRepo) {
				users.On("GetByUsername", ctx, "admin").Return(nil, errors.New("connection refused"))
			},
			wantErr: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &MockUserRepo{}
			tt.setup(users)

			svc := newTestAuthService(users)
			result, err := svc.Login(ctx, tt.username, tt.password)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, result)
				if errors.Is(tt.wantErr, ErrInvalidCredentials) {
					assert.ErrorIs(t, err, ErrInvalidCredentials)
				}
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, result.Token)
				assert.Equal(t, "admin", result.User.Username)
			}

			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		role     model.Role
		setup    func(*MockUserRepo)
		wantErr  error
		wantRole model.Role
	}{
		{
			name:     "successful registration with explicit role",
			username: "nuevo",
			password: "secreto1",
			role:     model.RoleAdmin,
			setup: func(users *MockUserRepo) {
				users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
					return u.Username == "nuevo" && u.Role == model.RoleAdmin && u.Password != "secreto1"
				})).Return(nil)
			},
			wantRole: model.RoleAdmin,
		},
		{
			name:     "empty role defaults to user",
			username: "nuevo",
			password: "secreto1",
			setup: func(users *MockUserRepo) {
				users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
					return u.Role == model.RoleUser
				})).Return(nil)
			},
			wantRole: model.RoleUser,
		},
		{
			name:     "duplicate username",
			username: "admin",
			password: "secreto1",
			setup: func(users *MockUserRepo) {
				users.On("Create", ctx, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			wantErr: ErrDuplicateUsername,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &MockUserRepo{}
			tt.setup(users)

			svc := newTestAuthService(users)
			result, err := svc.Register(ctx, tt.username, tt.password, tt.role)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, result.Token)
				assert.Equal(t, tt.wantRole, result.User.Role)
			}

			users.AssertExpectations(t)
		})
	}
}

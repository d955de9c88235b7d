package service

import (
	"context"
	"errors"

	"github.com/taskmgr-io/taskmgr/internal/modules/model"
	"github.com/taskmgr-io/taskmgr/internal/modules/repo"
	"github.com/taskmgr-io/taskmgr/internal/pkg/auth"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials is returned on unknown username or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateUsername is returned when the username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
)

// AuthResult is the login/register payload.
type AuthResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Register(ctx context.Context, username, password string, role model.Role) (*AuthResult, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type authService struct {
	users  repo.UserRepo
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
}

func NewAuthService(users repo.UserRepo, hasher *auth.PasswordHasher, tokens *auth.TokenManager) AuthService {
	return &authService{users: users, hasher: hasher, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: *user}, nil
}

func (s *authService) Register(ctx context.Context, username, password string, role model.Role) (*AuthResult, error) {
	if role == "" {
		role = model.RoleUser
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{Username: username, Password: hash, Role: role}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: *user}, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

package service

import (
	"context"
	"time"

	"github.com/prperemyshlev/task-manager/internal/domain"
	"github.com/prperemyshlev/task-manager/internal/dto"
)

// AuthService defines methods for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*AuthResult, error)
	Activate(ctx context.Context, link string) error
	Logout(ctx context.Context, refreshToken, accessToken string) (int64, error)
	Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	ValidateAccessToken(ctx context.Context, token string) (*domain.TokenClaims, error)
}

// ProjectService defines methods for project operations
type ProjectService interface {
	Create(ctx context.Context, req *dto.CreateProjectRequest) (*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, query dto.ProjectListQuery) ([]*domain.Project, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// TaskService defines methods for task operations
type TaskService interface {
	Create(ctx context.Context, req *dto.CreateTaskRequest) (*domain.Task, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, query dto.TaskListQuery) ([]*domain.Task, error)
	Update(ctx context.Context, id string, req *dto.UpdateTaskRequest) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// TokenDenylist remembers revoked access tokens by their token ID until they expire
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

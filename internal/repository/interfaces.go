package repository

import (
	"context"
	"time"

	"github.com/prperemyshlev/task-manager/internal/domain"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByEmailWithFailedAttempt also loads the user's failed-login counter, if any
	GetByEmailWithFailedAttempt(ctx context.Context, email string) (*domain.User, error)
	GetByActivationLink(ctx context.Context, link string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Touch(ctx context.Context, userID string, at time.Time) error
}

// FailedAttemptRepository stores per-user wrong-password counters
type FailedAttemptRepository interface {
	// Increment creates the counter at 1 or adds one to it in a single statement
	Increment(ctx context.Context, userID string, at time.Time) (*domain.FailedAttempt, error)
	Delete(ctx context.Context, userID string) error
}

// TokenRepository stores one refresh session per user
type TokenRepository interface {
	// Upsert replaces the user's stored token digest, creating the record if needed
	Upsert(ctx context.Context, userID, tokenHash string, at time.Time) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshSession, error)
	// DeleteByTokenHash reports how many records were removed; zero is not an error
	DeleteByTokenHash(ctx context.Context, tokenHash string) (int64, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// ProjectRepository defines methods for project operations
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, filter domain.ProjectFilter) ([]*domain.Project, error)
	Delete(ctx context.Context, id string) (int64, error)
	AppendTask(ctx context.Context, projectID, taskID string) error
	RemoveTask(ctx context.Context, projectID, taskID string) error
}

// TaskRepository defines methods for task operations
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter domain.TaskFilter, sort domain.TaskSort) ([]*domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

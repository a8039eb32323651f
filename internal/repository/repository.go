package repository

import (
	"github.com/prperemyshlev/task-manager/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User          UserRepository
	FailedAttempt FailedAttemptRepository
	Token         TokenRepository
	Project       ProjectRepository
	Task          TaskRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User:          NewUserRepository(db),
		FailedAttempt: NewFailedAttemptRepository(db),
		Token:         NewTokenRepository(db),
		Project:       NewProjectRepository(db),
		Task:          NewTaskRepository(db),
	}
}

package dto

import "time"

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8,max=32"`
	FullName *string `json:"fullName" binding:"omitempty,max=255"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=32"`
}

// CreateProjectRequest represents a project creation request
type CreateProjectRequest struct {
	Title       string     `json:"title" binding:"required,notblank,max=255"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// ProjectListQuery holds the optional project listing filters
type ProjectListQuery struct {
	Title string `form:"title"`
	ID    string `form:"id"`
}

// CreateTaskRequest represents a task creation request
type CreateTaskRequest struct {
	ProjectID   string     `json:"projectId" binding:"required"`
	Title       string     `json:"title" binding:"required,notblank,max=255"`
	Description *string    `json:"description"`
	Status      string     `json:"status" binding:"omitempty,taskstatus"`
	Priority    *int       `json:"priority" binding:"omitempty,min=0"`
	Deadline    *time.Time `json:"deadline"`
}

// UpdateTaskRequest is a partial task update; absent fields are left unchanged
type UpdateTaskRequest struct {
	Title       *string    `json:"title" binding:"omitempty,notblank,max=255"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" binding:"omitempty,taskstatus"`
	Priority    *int       `json:"priority" binding:"omitempty,min=0"`
	Deadline    *time.Time `json:"deadline"`
}

// TaskListQuery holds the optional task listing filters and ordering
type TaskListQuery struct {
	Title     string `form:"title"`
	Status    string `form:"status"`
	ProjectID string `form:"project_id"`
	CreatedAt string `form:"created_at"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
}

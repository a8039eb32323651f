package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prperemyshlev/task-manager/internal/domain"
	"github.com/prperemyshlev/task-manager/internal/dto"
	"github.com/prperemyshlev/task-manager/internal/repository"
	"go.uber.org/zap"
)

type taskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	logger      *zap.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, logger *zap.Logger) TaskService {
	return &taskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// Create inserts a task and appends it to its project's task list.
// The two writes are not atomic.
func (s *taskService) Create(ctx context.Context, req *dto.CreateTaskRequest) (*domain.Task, error) {
	projectNotFound := newError(KindBadRequest, MsgProjectNotFound, "project not found")

	if !validID(req.ProjectID) {
		return nil, projectNotFound
	}

	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, projectNotFound
		}
		return nil, err
	}

	status := domain.TaskStatusNew
	if req.Status != "" {
		status = domain.TaskStatus(req.Status)
		if !status.Valid() {
			return nil, invalidStatus(req.Status)
		}
	}

	task := &domain.Task{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	if err := s.projectRepo.AppendTask(ctx, task.ProjectID, task.ID); err != nil {
		return nil, fmt.Errorf("failed to link task to project: %w", err)
	}

	return task, nil
}

func invalidStatus(status string) *Error {
	return newError(KindBadRequest, MsgInvalidStatus, fmt.Sprintf("invalid status %q", status))
}

func (s *taskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	if !validID(id) {
		return nil, invalidID(id)
	}

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, wrapError(KindNotFound, MsgTaskNotFound, "task not found", err)
		}
		return nil, err
	}

	return task, nil
}

// List filters and orders tasks. A malformed project_id filter is ignored;
// ordering applies only when both sortBy and sortOrder are given.
func (s *taskService) List(ctx context.Context, query dto.TaskListQuery) ([]*domain.Task, error) {
	filter := domain.TaskFilter{
		Title:  query.Title,
		Status: domain.TaskStatus(query.Status),
	}

	if query.ProjectID != "" && validID(query.ProjectID) {
		filter.ProjectID = query.ProjectID
	}

	if query.CreatedAt != "" {
		day, err := time.Parse(time.DateOnly, query.CreatedAt)
		if err != nil {
			return nil, newError(KindBadRequest, "request.invalid_date", fmt.Sprintf("created_at must be YYYY-MM-DD, got %q", query.CreatedAt))
		}
		filter.CreatedOn = &day
	}

	var sort domain.TaskSort
	if query.SortBy != "" && query.SortOrder != "" {
		order := domain.SortOrder(query.SortOrder)
		if !domain.TaskSortFields[query.SortBy] || (order != domain.SortAsc && order != domain.SortDesc) {
			return nil, newError(KindBadRequest, MsgInvalidSort, fmt.Sprintf("cannot sort by %q %q", query.SortBy, query.SortOrder))
		}
		sort = domain.TaskSort{Field: query.SortBy, Order: order}
	}

	return s.taskRepo.List(ctx, filter, sort)
}

// Update applies a partial update and reports how many tasks matched
func (s *taskService) Update(ctx context.Context, id string, req *dto.UpdateTaskRequest) (int64, error) {
	if !validID(id) {
		return 0, invalidID(id)
	}

	patch := domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
	}

	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		if !status.Valid() {
			return 0, invalidStatus(*req.Status)
		}
		patch.Status = &status
	}

	return s.taskRepo.Update(ctx, id, patch)
}

// Delete removes a task and unlinks it from its project. Unknown ids delete nothing.
func (s *taskService) Delete(ctx context.Context, id string) (int64, error) {
	if !validID(id) {
		return 0, invalidID(id)
	}

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	deleted, err := s.taskRepo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	if err := s.projectRepo.RemoveTask(ctx, task.ProjectID, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn("Failed to unlink task from project",
			zap.String("task_id", id),
			zap.String("project_id", task.ProjectID),
			zap.Error(err),
		)
	}

	return deleted, nil
}

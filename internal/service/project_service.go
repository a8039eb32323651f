package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/prperemyshlev/task-manager/internal/domain"
	"github.com/prperemyshlev/task-manager/internal/dto"
	"github.com/prperemyshlev/task-manager/internal/repository"
)

type projectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo repository.ProjectRepository) ProjectService {
	return &projectService{projectRepo: projectRepo}
}

func validID(id string) bool {
	return uuid.Validate(id) == nil
}

func invalidID(id string) *Error {
	return newError(KindBadRequest, MsgInvalidID, fmt.Sprintf("invalid id %q", id))
}

func (s *projectService) Create(ctx context.Context, req *dto.CreateProjectRequest) (*domain.Project, error) {
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, newError(KindBadRequest, "project.invalid_dates", "end date is before start date")
	}

	project := &domain.Project{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		TaskIDs:     []string{},
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

func (s *projectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	if !validID(id) {
		return nil, invalidID(id)
	}

	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, wrapError(KindNotFound, MsgProjectNotFound, "project not found", err)
		}
		return nil, err
	}

	return project, nil
}

func (s *projectService) List(ctx context.Context, query dto.ProjectListQuery) ([]*domain.Project, error) {
	if query.ID != "" && !validID(query.ID) {
		return nil, invalidID(query.ID)
	}

	return s.projectRepo.List(ctx, domain.ProjectFilter{Title: query.Title, ID: query.ID})
}

// Delete removes a project and, through the schema, its tasks
func (s *projectService) Delete(ctx context.Context, id string) (int64, error) {
	if !validID(id) {
		return 0, invalidID(id)
	}

	return s.projectRepo.Delete(ctx, id)
}

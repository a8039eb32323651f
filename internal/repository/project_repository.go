package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/prperemyshlev/task-manager/internal/domain"
	"github.com/prperemyshlev/task-manager/pkg/database"
)

const projectColumns = `id, title, description, start_date, end_date, task_ids, created_at, updated_at`

type projectRepository struct {
	db *database.Postgres
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *database.Postgres) ProjectRepository {
	return &projectRepository{db: db}
}

func scanProject(row rowScanner) (*domain.Project, error) {
	project := &domain.Project{}
	var (
		description sql.NullString
		startDate   sql.NullTime
		endDate     sql.NullTime
	)

	err := row.Scan(
		&project.ID,
		&project.Title,
		&description,
		&startDate,
		&endDate,
		pq.Array(&project.TaskIDs),
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		project.Description = &description.String
	}
	if startDate.Valid {
		project.StartDate = &startDate.Time
	}
	if endDate.Valid {
		project.EndDate = &endDate.Time
	}
	if project.TaskIDs == nil {
		project.TaskIDs = []string{}
	}

	return project, nil
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	query := `
		INSERT INTO projects (id, title, description, start_date, end_date, task_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if project.TaskIDs == nil {
		project.TaskIDs = []string{}
	}

	now := time.Now()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	if project.UpdatedAt.IsZero() {
		project.UpdatedAt = project.CreatedAt
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		project.ID,
		project.Title,
		project.Description,
		project.StartDate,
		project.EndDate,
		pq.Array(project.TaskIDs),
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	project, err := scanProject(r.db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

// List returns projects matching every non-empty filter field exactly
func (r *projectRepository) List(ctx context.Context, filter domain.ProjectFilter) ([]*domain.Project, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Title != "" {
		args = append(args, filter.Title)
		conds = append(conds, fmt.Sprintf("title = $%d", len(args)))
	}
	if filter.ID != "" {
		args = append(args, filter.ID)
		conds = append(conds, fmt.Sprintf("id = $%d", len(args)))
	}

	query := `SELECT ` + projectColumns + ` FROM projects`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []*domain.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	return projects, nil
}

// Delete removes a project together with its tasks
func (r *projectRepository) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete project: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

func (r *projectRepository) AppendTask(ctx context.Context, projectID, taskID string) error {
	return r.updateTasks(ctx, `array_append(task_ids, $2::uuid)`, projectID, taskID)
}

func (r *projectRepository) RemoveTask(ctx context.Context, projectID, taskID string) error {
	return r.updateTasks(ctx, `array_remove(task_ids, $2::uuid)`, projectID, taskID)
}

func (r *projectRepository) updateTasks(ctx context.Context, expr, projectID, taskID string) error {
	query := `UPDATE projects SET task_ids = ` + expr + `, updated_at = NOW() WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, projectID, taskID)
	if err != nil {
		return fmt.Errorf("failed to update project tasks: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("project with id %s not found: %w", projectID, ErrNotFound)
	}

	return nil
}

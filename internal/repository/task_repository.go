package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/task-manager/internal/domain"
	"github.com/prperemyshlev/task-manager/pkg/database"
)

const taskColumns = `id, project_id, title, description, status, priority, deadline, created_at, updated_at`

type taskRepository struct {
	db *database.Postgres
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *database.Postgres) TaskRepository {
	return &taskRepository{db: db}
}

func scanTask(row rowScanner) (*domain.Task, error) {
	task := &domain.Task{}
	var (
		description sql.NullString
		priority    sql.NullInt64
		deadline    sql.NullTime
	)

	err := row.Scan(
		&task.ID,
		&task.ProjectID,
		&task.Title,
		&description,
		&task.Status,
		&priority,
		&deadline,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		task.Description = &description.String
	}
	if priority.Valid {
		p := int(priority.Int64)
		task.Priority = &p
	}
	if deadline.Valid {
		task.Deadline = &deadline.Time
	}

	return task, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (id, project_id, title, description, status, priority, deadline, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusNew
	}

	now := time.Now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = task.CreatedAt
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		task.ID,
		task.ProjectID,
		task.Title,
		task.Description,
		string(task.Status),
		task.Priority,
		task.Deadline,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("project %s: %w", task.ProjectID, ErrNotFound)
		}
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// List returns tasks matching filter. Only fields in domain.TaskSortFields are accepted for ordering.
func (r *taskRepository) List(ctx context.Context, filter domain.TaskFilter, sort domain.TaskSort) ([]*domain.Task, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Title != "" {
		add("title = $%d", filter.Title)
	}
	if filter.Status != "" {
		add("status = $%d", string(filter.Status))
	}
	if filter.ProjectID != "" {
		add("project_id = $%d", filter.ProjectID)
	}
	if filter.CreatedOn != nil {
		add("(created_at AT TIME ZONE 'UTC')::date = $%d::date", filter.CreatedOn.UTC().Format(time.DateOnly))
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}

	if sort.Field != "" {
		if !domain.TaskSortFields[sort.Field] {
			return nil, fmt.Errorf("unsupported sort field %q", sort.Field)
		}
		direction := "ASC"
		if sort.Order == domain.SortDesc {
			direction = "DESC"
		}
		query += fmt.Sprintf(` ORDER BY %s %s, id`, sort.Field, direction)
	}

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

// Update applies the non-nil fields of patch and reports how many tasks matched
func (r *taskRepository) Update(ctx context.Context, id string, patch domain.TaskPatch) (int64, error) {
	var (
		sets []string
		args = []any{id}
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Status != nil {
		set("status", string(*patch.Status))
	}
	if patch.Priority != nil {
		set("priority", *patch.Priority)
	}
	if patch.Deadline != nil {
		set("deadline", *patch.Deadline)
	}
	set("updated_at", time.Now())

	query := `UPDATE tasks SET ` + strings.Join(sets, ", ") + ` WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update task: %w", err)
	}

	matched, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return matched, nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete task: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

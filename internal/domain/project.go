package domain

import "time"

// TaskStatus is the workflow state of a task
type TaskStatus string

const (
	TaskStatusNew        TaskStatus = "new"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is one of the known statuses
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusNew, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Project groups tasks. TaskIDs mirrors the tasks pointing at the project.
type Project struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description,omitempty" db:"description"`
	StartDate   *time.Time `json:"startDate,omitempty" db:"start_date"`
	EndDate     *time.Time `json:"endDate,omitempty" db:"end_date"`
	TaskIDs     []string   `json:"tasks" db:"task_ids"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// Task is a unit of work inside a project
type Task struct {
	ID          string     `json:"id" db:"id"`
	ProjectID   string     `json:"projectId" db:"project_id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description,omitempty" db:"description"`
	Status      TaskStatus `json:"status" db:"status"`
	Priority    *int       `json:"priority,omitempty" db:"priority"`
	Deadline    *time.Time `json:"deadline,omitempty" db:"deadline"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// ProjectFilter narrows a project listing. Empty fields are ignored.
type ProjectFilter struct {
	Title string
	ID    string
}

// TaskFilter narrows a task listing. Empty fields are ignored.
type TaskFilter struct {
	Title     string
	Status    TaskStatus
	ProjectID string
	// CreatedOn matches tasks created on the same UTC calendar day
	CreatedOn *time.Time
}

// SortOrder is the direction of a listing
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// TaskSort orders a task listing. A zero value keeps storage order.
type TaskSort struct {
	Field string
	Order SortOrder
}

// TaskSortFields are the columns a task listing may be ordered by
var TaskSortFields = map[string]bool{
	"title":      true,
	"status":     true,
	"priority":   true,
	"deadline":   true,
	"created_at": true,
}

// TaskPatch holds the fields of a partial task update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *int
	Deadline    *time.Time
}

// Empty reports whether the patch changes nothing
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.Priority == nil && p.Deadline == nil
}

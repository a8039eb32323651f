package service

import (
	"context"
	"testing"
	"time"

	"github.com/prperemyshlev/task-manager/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := NewProjectService(newMemProjects())

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	created, err := svc.Create(ctx, &dto.CreateProjectRequest{Title: "Launch", StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.TaskIDs)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch", got.Title)
}

func TestProjectService_CreateRejectsReversedDates(t *testing.T) {
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)

	_, err := NewProjectService(newMemProjects()).Create(context.Background(), &dto.CreateProjectRequest{
		Title: "Backwards", StartDate: &start, EndDate: &end,
	})
	assert.True(t, IsKind(err, KindBadRequest))
}

func TestProjectService_Get(t *testing.T) {
	svc := NewProjectService(newMemProjects())

	tests := []struct {
		name string
		id   string
		kind Kind
	}{
		{name: "malformed id", id: "42", kind: KindBadRequest},
		{name: "unknown id", id: "7f4f0f5c-52a4-4a39-9b0a-03b3f3e8d2a1", kind: KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Get(context.Background(), tt.id)
			assert.True(t, IsKind(err, tt.kind), "got %v", err)
		})
	}
}

func TestProjectService_List(t *testing.T) {
	ctx := context.Background()
	svc := NewProjectService(newMemProjects())

	a, err := svc.Create(ctx, &dto.CreateProjectRequest{Title: "Alpha"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &dto.CreateProjectRequest{Title: "Beta"})
	require.NoError(t, err)

	all, err := svc.List(ctx, dto.ProjectListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byTitle, err := svc.List(ctx, dto.ProjectListQuery{Title: "Alpha"})
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, a.ID, byTitle[0].ID)

	_, err = svc.List(ctx, dto.ProjectListQuery{ID: "nope"})
	assert.True(t, IsKind(err, KindBadRequest))
}

func TestProjectService_DeleteCascadesToTasks(t *testing.T) {
	ctx := context.Background()
	store := newMemProjects()
	projects := NewProjectService(store)
	tasks := NewTaskService(&memTasks{memProjects: store}, store, nopLogger())

	project, err := projects.Create(ctx, &dto.CreateProjectRequest{Title: "Doomed"})
	require.NoError(t, err)
	task, err := tasks.Create(ctx, &dto.CreateTaskRequest{ProjectID: project.ID, Title: "Child"})
	require.NoError(t, err)

	deleted, err := projects.Delete(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = tasks.Get(ctx, task.ID)
	assert.True(t, IsKind(err, KindNotFound))

	deleted, err = projects.Delete(ctx, project.ID)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/task-manager/internal/domain"
	"github.com/prperemyshlev/task-manager/internal/repository"
	"github.com/stretchr/testify/mock"
)

// memStore is an in-memory user, failed-attempt and token repository
type memStore struct {
	mu       sync.Mutex
	users    map[string]*domain.User
	attempts map[string]*domain.FailedAttempt
	sessions map[string]*domain.RefreshSession
	touched  int
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]*domain.User),
		attempts: make(map[string]*domain.FailedAttempt),
		sessions: make(map[string]*domain.RefreshSession),
	}
}

var (
	_ repository.UserRepository          = (*memStore)(nil)
	_ repository.FailedAttemptRepository = (*memStore)(nil)
	_ repository.TokenRepository         = (*memStore)(nil)
)

func (m *memStore) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = uuid.NewString()
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *memStore) find(match func(*domain.User) bool) (*domain.User, error) {
	for _, u := range m.users {
		if match(u) {
			found := *u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(func(u *domain.User) bool { return u.Email == email })
}

func (m *memStore) GetByEmailWithFailedAttempt(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, err := m.find(func(u *domain.User) bool { return u.Email == email })
	if err != nil {
		return nil, err
	}
	if fa, ok := m.attempts[user.ID]; ok {
		record := *fa
		user.FailedAttempt = &record
	}
	return user, nil
}

func (m *memStore) GetByActivationLink(_ context.Context, link string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(func(u *domain.User) bool { return u.ActivationLink == link })
}

func (m *memStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(func(u *domain.User) bool { return u.ID == id })
}

func (m *memStore) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *user
	stored.FailedAttempt = nil
	m.users[user.ID] = &stored
	return nil
}

func (m *memStore) Touch(_ context.Context, userID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.UpdatedAt = at
	m.touched++
	return nil
}

func (m *memStore) Increment(_ context.Context, userID string, at time.Time) (*domain.FailedAttempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fa, ok := m.attempts[userID]
	if !ok {
		fa = &domain.FailedAttempt{UserID: userID, CreatedAt: at}
		m.attempts[userID] = fa
	}
	fa.Attempts++
	fa.UpdatedAt = at
	record := *fa
	return &record, nil
}

func (m *memStore) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.attempts, userID)
	return nil
}

func (m *memStore) attemptsOf(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if fa, ok := m.attempts[userID]; ok {
		return fa.Attempts
	}
	return 0
}

func (m *memStore) Upsert(_ context.Context, userID, tokenHash string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		s = &domain.RefreshSession{UserID: userID, CreatedAt: at}
		m.sessions[userID] = s
	}
	s.TokenHash = tokenHash
	s.UpdatedAt = at
	return nil
}

func (m *memStore) GetByTokenHash(_ context.Context, tokenHash string) (*domain.RefreshSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.TokenHash == tokenHash {
			found := *s
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) DeleteByTokenHash(_ context.Context, tokenHash string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.TokenHash == tokenHash {
			delete(m.sessions, id)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memStore) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, s := range m.sessions {
		if s.UpdatedAt.Before(before) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

func (m *memStore) sessionOf(userID string) *domain.RefreshSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[userID]
}

// mockMailer records activation mails
type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, to, subject, html string) error {
	args := m.Called(ctx, to, subject, html)
	return args.Error(0)
}

// memDenylist is an in-memory TokenDenylist
type memDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newMemDenylist() *memDenylist {
	return &memDenylist{revoked: make(map[string]time.Duration)}
}

func (d *memDenylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[tokenID] = ttl
	return nil
}

func (d *memDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[tokenID]
	return ok, nil
}

// clock is a settable time source
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// memProjects is an in-memory project and task repository.
// Deleting a project drops its tasks like the schema's cascade does.
type memProjects struct {
	mu       sync.Mutex
	projects map[string]*domain.Project
	tasks    map[string]*domain.Task
	order    []string
}

func newMemProjects() *memProjects {
	return &memProjects{
		projects: make(map[string]*domain.Project),
		tasks:    make(map[string]*domain.Task),
	}
}

var _ repository.ProjectRepository = (*memProjects)(nil)

func (m *memProjects) Create(_ context.Context, project *domain.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	project.ID = uuid.NewString()
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	stored := *project
	stored.TaskIDs = append([]string{}, project.TaskIDs...)
	m.projects[project.ID] = &stored
	return nil
}

func (m *memProjects) GetByID(_ context.Context, id string) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := *p
	found.TaskIDs = append([]string{}, p.TaskIDs...)
	return &found, nil
}

func (m *memProjects) List(_ context.Context, filter domain.ProjectFilter) ([]*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []*domain.Project{}
	for _, p := range m.projects {
		if filter.Title != "" && p.Title != filter.Title {
			continue
		}
		if filter.ID != "" && p.ID != filter.ID {
			continue
		}
		found := *p
		result = append(result, &found)
	}
	return result, nil
}

func (m *memProjects) Delete(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[id]; !ok {
		return 0, nil
	}
	delete(m.projects, id)
	for tid, t := range m.tasks {
		if t.ProjectID == id {
			delete(m.tasks, tid)
		}
	}
	return 1, nil
}

func (m *memProjects) AppendTask(_ context.Context, projectID, taskID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[projectID]
	if !ok {
		return repository.ErrNotFound
	}
	p.TaskIDs = append(p.TaskIDs, taskID)
	return nil
}

func (m *memProjects) RemoveTask(_ context.Context, projectID, taskID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[projectID]
	if !ok {
		return repository.ErrNotFound
	}
	kept := p.TaskIDs[:0]
	for _, id := range p.TaskIDs {
		if id != taskID {
			kept = append(kept, id)
		}
	}
	p.TaskIDs = kept
	return nil
}

// memTasks shares storage with memProjects
type memTasks struct {
	*memProjects
	lastFilter domain.TaskFilter
	lastSort   domain.TaskSort
}

var _ repository.TaskRepository = (*memTasks)(nil)

func (m *memTasks) Create(_ context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	task.ID = uuid.NewString()
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	stored := *task
	m.tasks[task.ID] = &stored
	m.order = append(m.order, task.ID)
	return nil
}

func (m *memTasks) GetByID(_ context.Context, id string) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := *t
	return &found, nil
}

func (m *memTasks) List(_ context.Context, filter domain.TaskFilter, order domain.TaskSort) ([]*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = filter
	m.lastSort = order

	result := []*domain.Task{}
	for _, id := range m.order {
		t, ok := m.tasks[id]
		if !ok {
			continue
		}
		if filter.Title != "" && t.Title != filter.Title {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.ProjectID != "" && t.ProjectID != filter.ProjectID {
			continue
		}
		found := *t
		result = append(result, &found)
	}

	if order.Field == "title" {
		sort.SliceStable(result, func(i, j int) bool {
			less := strings.Compare(result[i].Title, result[j].Title) < 0
			if order.Order == domain.SortDesc {
				return !less && result[i].Title != result[j].Title
			}
			return less
		})
	}
	return result, nil
}

func (m *memTasks) Update(_ context.Context, id string, patch domain.TaskPatch) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return 0, nil
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = patch.Description
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.Priority != nil {
		t.Priority = patch.Priority
	}
	if patch.Deadline != nil {
		t.Deadline = patch.Deadline
	}
	return 1, nil
}

func (m *memTasks) Delete(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return 0, nil
	}
	delete(m.tasks, id)
	return 1, nil
}

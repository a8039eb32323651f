package handler

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/task-manager/internal/domain"
	"github.com/prperemyshlev/task-manager/internal/dto"
	"github.com/prperemyshlev/task-manager/internal/service"
	"github.com/prperemyshlev/task-manager/internal/utils"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := utils.RegisterValidators(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type mockAuthService struct {
	mock.Mock
}

var _ service.AuthService = (*mockAuthService)(nil)

func (m *mockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*service.AuthResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*service.AuthResult)
	return result, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*service.AuthResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*service.AuthResult)
	return result, args.Error(1)
}

func (m *mockAuthService) Activate(ctx context.Context, link string) error {
	return m.Called(ctx, link).Error(0)
}

func (m *mockAuthService) Logout(ctx context.Context, refreshToken, accessToken string) (int64, error) {
	args := m.Called(ctx, refreshToken, accessToken)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (*service.RefreshResult, error) {
	args := m.Called(ctx, refreshToken)
	result, _ := args.Get(0).(*service.RefreshResult)
	return result, args.Error(1)
}

func (m *mockAuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockAuthService) ValidateAccessToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*domain.TokenClaims)
	return claims, args.Error(1)
}

type mockProjectService struct {
	mock.Mock
}

var _ service.ProjectService = (*mockProjectService)(nil)

func (m *mockProjectService) Create(ctx context.Context, req *dto.CreateProjectRequest) (*domain.Project, error) {
	args := m.Called(ctx, req)
	project, _ := args.Get(0).(*domain.Project)
	return project, args.Error(1)
}

func (m *mockProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	args := m.Called(ctx, id)
	project, _ := args.Get(0).(*domain.Project)
	return project, args.Error(1)
}

func (m *mockProjectService) List(ctx context.Context, query dto.ProjectListQuery) ([]*domain.Project, error) {
	args := m.Called(ctx, query)
	projects, _ := args.Get(0).([]*domain.Project)
	return projects, args.Error(1)
}

func (m *mockProjectService) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type mockTaskService struct {
	mock.Mock
}

var _ service.TaskService = (*mockTaskService)(nil)

func (m *mockTaskService) Create(ctx context.Context, req *dto.CreateTaskRequest) (*domain.Task, error) {
	args := m.Called(ctx, req)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *mockTaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *mockTaskService) List(ctx context.Context, query dto.TaskListQuery) ([]*domain.Task, error) {
	args := m.Called(ctx, query)
	tasks, _ := args.Get(0).([]*domain.Task)
	return tasks, args.Error(1)
}

func (m *mockTaskService) Update(ctx context.Context, id string, req *dto.UpdateTaskRequest) (int64, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTaskService) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type stubLimiter struct {
	decision service.RateDecision
	err      error
	keys     []string
}

func (s *stubLimiter) Allow(_ context.Context, key string, _ int, _ time.Duration) (service.RateDecision, error) {
	s.keys = append(s.keys, key)
	return s.decision, s.err
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/task-manager/internal/dto"
	"github.com/prperemyshlev/task-manager/internal/service"
)

// TaskHandler handles task requests
type TaskHandler struct {
	taskService service.TaskService
}

func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Create creates a task inside an existing project
// @Summary Create task
// @Tags task
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task"
// @Success 201 {object} domain.Task
// @Failure 400 {object} dto.ErrorResponse
// @Router /task [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// Get returns one task
// @Summary Get task
// @Tags task
// @Security BearerAuth
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} domain.Task
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /task/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.taskService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// List returns tasks matching the query filters
// @Summary List tasks
// @Tags task
// @Security BearerAuth
// @Produce json
// @Param title query string false "Exact title"
// @Param status query string false "Status" Enums(new, in_progress, completed)
// @Param project_id query string false "Project ID"
// @Param created_at query string false "Creation day, YYYY-MM-DD"
// @Param sortBy query string false "Sort field" Enums(title, status, priority, deadline, created_at)
// @Param sortOrder query string false "Sort direction" Enums(asc, desc)
// @Success 200 {array} domain.Task
// @Failure 400 {object} dto.ErrorResponse
// @Router /task [get]
func (h *TaskHandler) List(c *gin.Context) {
	var query dto.TaskListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeValidationError(c, err)
		return
	}

	tasks, err := h.taskService.List(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// Update partially updates a task
// @Summary Update task
// @Tags task
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Fields to change"
// @Success 200 {object} dto.UpdateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /task/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	matched, err := h.taskService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UpdateResponse{MatchedCount: matched})
}

// Delete removes a task
// @Summary Delete task
// @Tags task
// @Security BearerAuth
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /task/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	deleted, err := h.taskService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteResponse{DeletedCount: deleted})
}

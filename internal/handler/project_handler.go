package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/task-manager/internal/dto"
	"github.com/prperemyshlev/task-manager/internal/service"
)

// ProjectHandler handles project requests
type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// Create creates a project
// @Summary Create project
// @Tags project
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateProjectRequest true "Project"
// @Success 201 {object} domain.Project
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /project/create [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// Get returns one project
// @Summary Get project
// @Tags project
// @Security BearerAuth
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} domain.Project
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /project/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projectService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// List returns projects matching the query filters
// @Summary List projects
// @Tags project
// @Security BearerAuth
// @Produce json
// @Param title query string false "Exact title"
// @Param id query string false "Project ID"
// @Success 200 {array} domain.Project
// @Failure 400 {object} dto.ErrorResponse
// @Router /project [get]
func (h *ProjectHandler) List(c *gin.Context) {
	var query dto.ProjectListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeValidationError(c, err)
		return
	}

	projects, err := h.projectService.List(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

// Delete removes a project and its tasks
// @Summary Delete project
// @Tags project
// @Security BearerAuth
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /project/delete/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	deleted, err := h.projectService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteResponse{DeletedCount: deleted})
}

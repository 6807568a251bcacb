package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/internal/model"
	"github.com/taskboard/backend/internal/service"
)

type ProjectHandler struct {
	svc *service.ProjectService
}

func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// CreateProject godoc
// @Summary Create project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateProjectRequest true "Project"
// @Success 201 {object} model.Project
// @Failure 400 {object} model.ErrorResponse
// @Router /api/projects [post]
func (h *ProjectHandler) Create(c *gin.Context, who model.TokenPayload) {
	var req model.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	project, err := h.svc.Create(c.Request.Context(), who.Sub, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// ListProjects godoc
// @Summary List projects
// @Description Non-archived projects with todo counters, most recently updated first.
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ProjectWithStats
// @Router /api/projects [get]
func (h *ProjectHandler) List(c *gin.Context, who model.TokenPayload) {
	projects, err := h.svc.List(c.Request.Context(), who.Sub)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GetProject godoc
// @Summary Get project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} model.ProjectWithStats
// @Failure 404 {object} model.ErrorResponse
// @Router /api/projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context, who model.TokenPayload) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	project, err := h.svc.Get(c.Request.Context(), who.Sub, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// UpdateProject godoc
// @Summary Update project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body model.UpdateProjectRequest true "Fields to change"
// @Success 200 {object} model.Project
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/projects/{id} [patch]
func (h *ProjectHandler) Update(c *gin.Context, who model.TokenPayload) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	project, err := h.svc.Update(c.Request.Context(), who.Sub, id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// DeleteProject godoc
// @Summary Delete project
// @Description Removes the project and all of its todos.
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} model.Project
// @Failure 404 {object} model.ErrorResponse
// @Router /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context, who model.TokenPayload) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	project, err := h.svc.Delete(c.Request.Context(), who.Sub, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/model"
	"github.com/taskboard/backend/internal/service"
)

type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// CreateTodo godoc
// @Summary Create todo
// @Description Without projectId the todo goes to the caller's "Personal Tasks" project, created on demand.
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateTodoRequest true "Todo"
// @Success 201 {object} model.Todo
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/todos [post]
func (h *TodoHandler) Create(c *gin.Context, who model.TokenPayload) {
	var req model.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	todo, err := h.svc.Create(c.Request.Context(), who.Sub, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, todo)
}

// ListTodos godoc
// @Summary List todos
// @Description Non-archived todos, pinned first, then by priority and most recent update.
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param projectId query string false "Project ID"
// @Success 200 {array} model.Todo
// @Failure 400 {object} model.ErrorResponse
// @Router /api/todos [get]
func (h *TodoHandler) List(c *gin.Context, who model.TokenPayload) {
	var projectID *uuid.UUID
	if raw := c.Query("projectId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid projectId"})
			return
		}
		projectID = &id
	}

	todos, err := h.svc.List(c.Request.Context(), who.Sub, projectID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

// GetTodo godoc
// @Summary Get todo
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Success 200 {object} model.Todo
// @Failure 404 {object} model.ErrorResponse
// @Router /api/todos/{id} [get]
func (h *TodoHandler) Get(c *gin.Context, who model.TokenPayload) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	todo, err := h.svc.Get(c.Request.Context(), who.Sub, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// UpdateTodo godoc
// @Summary Update todo
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Param request body model.UpdateTodoRequest true "Fields to change"
// @Success 200 {object} model.Todo
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/todos/{id} [patch]
func (h *TodoHandler) Update(c *gin.Context, who model.TokenPayload) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	todo, err := h.svc.Update(c.Request.Context(), who.Sub, id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// ArchiveTodo godoc
// @Summary Archive todo
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Success 200 {object} model.Todo
// @Failure 404 {object} model.ErrorResponse
// @Router /api/todos/{id} [delete]
func (h *TodoHandler) Archive(c *gin.Context, who model.TokenPayload) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	todo, err := h.svc.Archive(c.Request.Context(), who.Sub, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// DeleteTodo godoc
// @Summary Delete todo permanently
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Success 200 {object} model.Todo
// @Failure 404 {object} model.ErrorResponse
// @Router /api/todos/{id}/hard [delete]
func (h *TodoHandler) Delete(c *gin.Context, who model.TokenPayload) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	todo, err := h.svc.Delete(c.Request.Context(), who.Sub, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

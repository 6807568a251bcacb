package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/internal/model"
	"github.com/taskboard/backend/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Register godoc
// @Summary Register a new account
// @Tags users
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Account details"
// @Success 201 {object} model.UserResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user.Response())
}

// Me godoc
// @Summary Get current account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/users/me [get]
func (h *UserHandler) Me(c *gin.Context, who model.TokenPayload) {
	user, err := h.svc.Get(c.Request.Context(), who.Sub)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Response())
}

// UpdateMe godoc
// @Summary Update current account preferences
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.UpdateUserRequest true "Fields to change"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/users/me [patch]
func (h *UserHandler) UpdateMe(c *gin.Context, who model.TokenPayload) {
	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.svc.Update(c.Request.Context(), who.Sub, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Response())
}

// DeleteMe godoc
// @Summary Delete current account
// @Description Soft delete. Every session of the account is revoked.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/users/me [delete]
func (h *UserHandler) DeleteMe(c *gin.Context, who model.TokenPayload) {
	user, err := h.svc.Remove(c.Request.Context(), who.Sub)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Response())
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/internal/model"
	"github.com/taskboard/backend/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login godoc
// @Summary Login
// @Description Every successful login opens a new session; earlier sessions stay valid.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Email and password"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.LoginResponse{
		AccessToken: res.AccessToken,
		User:        res.User,
	})
}

// Logout godoc
// @Summary Logout
// @Description Revokes the session the bearer token belongs to.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Session
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context, who model.TokenPayload) {
	session, err := h.svc.Logout(c.Request.Context(), who.Sub, who.SessionID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Profile godoc
// @Summary Get token payload
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.TokenPayload
// @Failure 401 {object} model.ErrorResponse
// @Router /api/auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context, who model.TokenPayload) {
	c.JSON(http.StatusOK, who)
}

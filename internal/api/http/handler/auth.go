package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fieldscope/field-inspector/internal/logger"
	"github.com/fieldscope/field-inspector/internal/model"
)

// AuthService handles registration and login over the credential backends.
type AuthService interface {
	Register(ctx context.Context, email, password, displayName string) (model.User, model.Session, error)
	Login(ctx context.Context, email, password string) (model.User, model.Session, error)
}

// Auth exposes the authentication endpoints.
type Auth struct {
	service AuthService
	logger  *logger.Logger
}

// NewAuth creates a new Auth handler instance.
func NewAuth(service AuthService, logger *logger.Logger) *Auth {
	return &Auth{service: service, logger: logger}
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register.
func (h *Auth) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response{Success: false, Error: "invalid request body"})
		return
	}

	user, session, err := h.service.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response{
		Success: true,
		Message: "user registered",
		User:    newUserPayload(user),
		Session: newSessionPayload(session),
	})
}

// Login handles POST /api/auth/login.
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response{Success: false, Error: "invalid request body"})
		return
	}

	user, session, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response{
		Success: true,
		Message: "login successful",
		User:    newUserPayload(user),
		Session: newSessionPayload(session),
	})
}

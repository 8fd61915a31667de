package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fieldscope/field-inspector/internal/model"
)

// response is the common envelope for every API reply. Optional sections are
// omitted when not relevant to the endpoint.
type response struct {
	Success  bool                    `json:"success"`
	Message  string                  `json:"message,omitempty"`
	Error    string                  `json:"error,omitempty"`
	User     *userPayload            `json:"user,omitempty"`
	Session  *sessionPayload         `json:"session,omitempty"`
	Record   *model.InspectionRecord `json:"record,omitempty"`
	Stats    *model.RecordStats      `json:"stats,omitempty"`
	Features *model.Features         `json:"features,omitempty"`
}

// listResponse always carries the records array and pagination block, even
// when the page is empty.
type listResponse struct {
	Success    bool                     `json:"success"`
	Records    []model.InspectionRecord `json:"records"`
	Pagination pagination               `json:"pagination"`
}

type userPayload struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

type sessionPayload struct {
	AccessToken string `json:"accessToken"`
	UserID      string `json:"userId"`
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

func newUserPayload(user model.User) *userPayload {
	return &userPayload{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}
}

func newSessionPayload(session model.Session) *sessionPayload {
	return &sessionPayload{
		AccessToken: session.Token,
		UserID:      session.UserID,
	}
}

// handleError maps service errors to status codes without leaking backend
// details: anything unclassified becomes a generic 500.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrMissingToken):
		c.JSON(http.StatusUnauthorized, response{Success: false, Error: "authorization token required"})
	case errors.Is(err, model.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, response{Success: false, Error: "invalid authorization token"})
	case errors.Is(err, model.ErrDuplicateUser):
		c.JSON(http.StatusBadRequest, response{Success: false, Error: "user already exists"})
	case errors.Is(err, model.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, response{Success: false, Error: "invalid credentials"})
	case errors.Is(err, model.ErrMalformedCoordinates):
		c.JSON(http.StatusBadRequest, response{Success: false, Error: "coordinates must be valid JSON"})
	case errors.Is(err, model.ErrMissingOwner):
		c.JSON(http.StatusBadRequest, response{Success: false, Error: "record owner missing"})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, response{Success: false, Error: "record not found"})
	default:
		c.JSON(http.StatusInternalServerError, response{Success: false, Error: "internal server error"})
	}
}

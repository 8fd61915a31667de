package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fieldscope/field-inspector/internal/logger"
	"github.com/fieldscope/field-inspector/internal/model"
)

// TokenVerifier resolves a bearer token to its user.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (model.User, error)
}

// Authenticate validates bearer tokens and injects the user id into the
// request context.
type Authenticate struct {
	verifier       TokenVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(verifier TokenVerifier, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{verifier: verifier, contextManager: contextManager, logger: logger}
}

// Handle parses the Authorization header, verifies the token and binds the
// user id to the request context for downstream handlers.
func (m *Authenticate) Handle(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authorization token required"})
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	user, err := m.verifier.Verify(c.Request.Context(), tokenString)
	if err != nil {
		m.logger.Info("Authentication failed", "error", err.Error())
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid authorization token"})
		return
	}

	ctx := m.contextManager.SetUserIDToContext(c.Request.Context(), user.ID)
	c.Request = c.Request.WithContext(ctx)

	c.Next()
}

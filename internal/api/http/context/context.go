package context

import (
	"context"
)

type contextKey int

const userIDKey contextKey = iota

// Manager stores and retrieves the authenticated user id on a request
// context. The id is opaque: database-backend ids are UUID strings, fallback
// ids are decimal integers.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserIDToContext returns a child context carrying the user id.
func (m *Manager) SetUserIDToContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext retrieves the user id set by the authentication
// middleware. The boolean is false when no user is bound.
func (m *Manager) GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

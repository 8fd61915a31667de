package model

import "context"

// ContextManager stores and retrieves the authenticated user ID on a
// request context.
type ContextManager interface {
	SetUserIDToContext(ctx context.Context, userID string) context.Context
	GetUserIDFromContext(ctx context.Context) (string, bool)
}

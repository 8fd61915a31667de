package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// User represents a registered inspector account.
//
// ID is opaque to everything above the credential layer: the database
// backend assigns UUIDs while the in-process fallback assigns decimal
// integers. Callers may only compare IDs for equality.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}

// Session is an opaque bearer token bound to a user.
type Session struct {
	Token  string
	UserID string
}

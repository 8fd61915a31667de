package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fieldscope/field-inspector/internal/logger"
	"github.com/fieldscope/field-inspector/internal/model"
	"github.com/fieldscope/field-inspector/internal/repository/memory"
	"github.com/fieldscope/field-inspector/internal/token"
)

// TokenManager mints and parses database-backend session tokens.
type TokenManager interface {
	Generate(userID string) (string, error)
	Parse(tokenString string) (string, error)
}

// Auth implements registration, login and token verification over two
// interchangeable credential backends: the database store and an in-process
// fallback. The database backend is preferred when configured; its
// unavailability is absorbed by falling back within the same request.
type Auth struct {
	users    model.UserStore // nil when the database backend is absent
	fallback *memory.UserStore
	tokens   TokenManager
	logger   *logger.Logger
}

func NewAuth(
	users model.UserStore,
	fallback *memory.UserStore,
	tokens TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		users:    users,
		fallback: fallback,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates a user and mints a fresh session.
// Email uniqueness is checked within the active backend only.
func (a *Auth) Register(ctx context.Context, email, password, displayName string) (model.User, model.Session, error) {
	if email == "" || password == "" {
		return model.User{}, model.Session{}, model.ErrInvalidCredentials
	}

	if a.users != nil {
		user, session, err := a.registerPrimary(ctx, email, password, displayName)
		if err == nil {
			return user, session, nil
		}
		if errors.Is(err, model.ErrDuplicateUser) {
			return model.User{}, model.Session{}, err
		}
		a.logger.Error("Auth service: credential backend unavailable, registering on fallback",
			"email", email,
			"error", err.Error())
	}

	return a.registerFallback(ctx, email, password, displayName)
}

func (a *Auth) registerPrimary(ctx context.Context, email, password, displayName string) (model.User, model.Session, error) {
	_, err := a.users.GetByEmail(ctx, email)
	if err == nil {
		return model.User{}, model.Session{}, model.ErrDuplicateUser
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, model.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.users.Create(ctx, model.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return model.User{}, model.Session{}, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := a.mintSession(user.ID)
	if err != nil {
		return model.User{}, model.Session{}, err
	}

	a.logger.Info("Auth service: user registered", "email", email, "user_id", user.ID)
	return user, session, nil
}

func (a *Auth) registerFallback(ctx context.Context, email, password, displayName string) (model.User, model.Session, error) {
	user, err := a.fallback.Register(ctx, email, password, displayName)
	if err != nil {
		return model.User{}, model.Session{}, err
	}

	session, err := localSession(user.ID)
	if err != nil {
		return model.User{}, model.Session{}, err
	}

	a.logger.Info("Auth service: user registered on fallback store", "email", email, "user_id", user.ID)
	return user, session, nil
}

// Login verifies email and password against the active backend and mints a
// fresh session. Every login creates a new token; sessions are never reused.
func (a *Auth) Login(ctx context.Context, email, password string) (model.User, model.Session, error) {
	if a.users != nil {
		user, err := a.users.GetByEmail(ctx, email)
		switch {
		case err == nil:
			if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
				return model.User{}, model.Session{}, model.ErrInvalidCredentials
			}
			session, err := a.mintSession(user.ID)
			if err != nil {
				return model.User{}, model.Session{}, err
			}
			return user, session, nil
		case errors.Is(err, model.ErrNotFound):
			// Not registered on the active backend. The fallback store may
			// still hold users registered during an outage.
		default:
			a.logger.Error("Auth service: credential backend unavailable, logging in on fallback",
				"email", email,
				"error", err.Error())
		}
	}

	user, err := a.fallback.Login(ctx, email, password)
	if err != nil {
		return model.User{}, model.Session{}, err
	}

	session, err := localSession(user.ID)
	if err != nil {
		return model.User{}, model.Session{}, err
	}
	return user, session, nil
}

// Verify resolves a bearer token to its user. Dispatch is by token shape:
// fallback-issued tokens decode to an integer id looked up in the in-process
// map; anything else is treated as a database-backend token and validated
// statelessly. Verification never mutates state.
func (a *Auth) Verify(ctx context.Context, tokenString string) (model.User, error) {
	if tokenString == "" {
		return model.User{}, model.ErrMissingToken
	}

	if token.IsLocal(tokenString) {
		id, err := token.DecodeLocal(tokenString)
		if err != nil {
			return model.User{}, model.ErrInvalidToken
		}
		user, err := a.fallback.GetByID(ctx, id)
		if err != nil {
			return model.User{}, model.ErrInvalidToken
		}
		return user, nil
	}

	userID, err := a.tokens.Parse(tokenString)
	if err != nil {
		return model.User{}, model.ErrInvalidToken
	}
	return model.User{ID: userID}, nil
}

func (a *Auth) mintSession(userID string) (model.Session, error) {
	tokenString, err := a.tokens.Generate(userID)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to mint session: %w", err)
	}
	return model.Session{Token: tokenString, UserID: userID}, nil
}

func localSession(userID string) (model.Session, error) {
	id, err := localUserID(userID)
	if err != nil {
		return model.Session{}, err
	}
	return model.Session{Token: token.EncodeLocal(id), UserID: userID}, nil
}

func localUserID(userID string) (int, error) {
	id, err := strconv.Atoi(userID)
	if err != nil {
		return 0, fmt.Errorf("fallback user id is not an integer: %w", err)
	}
	return id, nil
}

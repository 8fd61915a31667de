// Package memory holds the in-process fallback stores used when the
// database backend is absent or unavailable. Stores are constructed once at
// startup and injected; they hold no package-level state.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/fieldscope/field-inspector/internal/model"
)

// UserStore keeps registered users in a mutex-guarded map with a monotonic
// integer id counter.
type UserStore struct {
	mu     sync.RWMutex
	nextID int
	users  map[int]model.User
}

func NewUserStore() *UserStore {
	return &UserStore{
		nextID: 1,
		users:  make(map[int]model.User),
	}
}

// Register creates a user, enforcing email uniqueness within this store only.
func (s *UserStore) Register(_ context.Context, email, password, displayName string) (model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return model.User{}, model.ErrDuplicateUser
		}
	}

	id := s.nextID
	s.nextID++

	user := model.User{
		ID:           strconv.Itoa(id),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	s.users[id] = user

	return user, nil
}

// Login matches email and password with a linear scan. The store holds at
// most a process worth of fallback registrations, so scan cost is irrelevant.
func (s *UserStore) Login(_ context.Context, email, password string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
				return model.User{}, model.ErrInvalidCredentials
			}
			return u, nil
		}
	}

	return model.User{}, model.ErrInvalidCredentials
}

// GetByID resolves the integer id embedded in a fallback session token.
func (s *UserStore) GetByID(_ context.Context, id int) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

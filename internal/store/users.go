package store

import (
	"sort"
	"sync"
	"time"

	"github.com/fattoush-pos/api/internal/model"
	"github.com/google/uuid"
)

// UserStore holds staff accounts in memory. Deletes are soft so order
// attribution (waiter id/name) stays resolvable.
type UserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]model.User
}

// NewUserStore creates an empty UserStore.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[uuid.UUID]model.User)}
}

// List returns all active users sorted by creation time.
func (s *UserStore) List() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		if u.IsActive {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Username < out[j].Username
	})
	return out
}

// Get returns one user by ID, active or not.
func (s *UserStore) Get(id uuid.UUID) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

// GetByUsername returns an active user by username.
func (s *UserStore) GetByUsername(username string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.IsActive && u.Username == username {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

// GetByPin returns the active user holding the given PIN.
func (s *UserStore) GetByPin(pin string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.IsActive && u.Pin != "" && u.Pin == pin {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

// Create adds a user, assigning ID and creation time.
func (s *UserStore) Create(u model.User) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = uuid.New()
	u.IsActive = true
	u.CreatedAt = time.Now()
	s.users[u.ID] = u
	return u
}

// Update replaces an existing active user's editable fields.
func (s *UserStore) Update(u model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.users[u.ID]
	if !ok || !cur.IsActive {
		return model.User{}, ErrNotFound
	}
	u.CreatedAt = cur.CreatedAt
	u.IsActive = true
	s.users[u.ID] = u
	return u, nil
}

// SoftDelete deactivates a user.
func (s *UserStore) SoftDelete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok || !u.IsActive {
		return ErrNotFound
	}
	u.IsActive = false
	s.users[id] = u
	return nil
}

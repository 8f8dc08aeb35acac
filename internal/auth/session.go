package auth

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"clinic-management-api/internal/model"
	"clinic-management-api/internal/store"
)

// Sessions owns the "who is logged in" state: one optional user snapshot,
// mirrored to the record store so it survives restarts. Only one user is
// current at a time.
type Sessions struct {
	mu      sync.RWMutex
	rs      store.RecordStore
	log     *zap.Logger
	current *model.User
}

func NewSessions(rs store.RecordStore, log *zap.Logger) *Sessions {
	return &Sessions{rs: rs, log: log}
}

// Hydrate restores a persisted session on startup. A session whose user id no
// longer exists in the user collection (the store was reset underneath it) is
// discarded.
func (s *Sessions) Hydrate() {
	var cached model.User
	if !s.rs.Get(store.KeyCurrentUser, &cached) {
		return
	}
	var users []model.User
	s.rs.Get(store.KeyUsers, &users)
	for i := range users {
		if users[i].ID == cached.ID {
			s.mu.Lock()
			s.current = &cached
			s.mu.Unlock()
			s.log.Info("session restored", zap.String("user_id", cached.ID), zap.String("role", string(cached.Role)))
			return
		}
	}
	s.log.Warn("stale session discarded", zap.String("user_id", cached.ID))
	_ = s.rs.Remove(store.KeyCurrentUser)
}

// Login matches email (trimmed, case-insensitive) and password against the
// user collection. On success the matched user becomes the current session.
// On failure the session is left untouched and ErrInvalidCredentials is
// returned. The context is unused today; credential checks may become remote.
func (s *Sessions) Login(ctx context.Context, email, password string) (*model.User, error) {
	want := strings.ToLower(strings.TrimSpace(email))
	var users []model.User
	s.rs.Get(store.KeyUsers, &users)

	for i := range users {
		u := users[i]
		if strings.ToLower(strings.TrimSpace(u.Email)) != want {
			continue
		}
		if !CheckPassword(u.Password, password) {
			continue
		}
		if err := s.rs.Set(store.KeyCurrentUser, u); err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.current = &u
		s.mu.Unlock()
		s.log.Info("login", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
		return &u, nil
	}
	return nil, ErrInvalidCredentials
}

// Logout clears the session unconditionally.
func (s *Sessions) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	_ = s.rs.Remove(store.KeyCurrentUser)
}

// Current returns a copy of the session user, or nil when anonymous.
func (s *Sessions) Current() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// UpdateUser replaces the matching record in the user collection and, when
// the updated user is the session holder, refreshes the session to match.
// Unknown ids leave both untouched.
func (s *Sessions) UpdateUser(updated model.User) error {
	var users []model.User
	s.rs.Get(store.KeyUsers, &users)

	found := false
	for i := range users {
		if users[i].ID == updated.ID {
			users[i] = updated
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	if err := s.rs.Set(store.KeyUsers, users); err != nil {
		return err
	}

	s.mu.Lock()
	isCurrent := s.current != nil && s.current.ID == updated.ID
	if isCurrent {
		u := updated
		s.current = &u
	}
	s.mu.Unlock()

	if isCurrent {
		return s.rs.Set(store.KeyCurrentUser, updated)
	}
	return nil
}

// UserByID looks up a user in the collection, for token-to-user resolution.
func (s *Sessions) UserByID(id string) *model.User {
	var users []model.User
	s.rs.Get(store.KeyUsers, &users)
	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u
		}
	}
	return nil
}

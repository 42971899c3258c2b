package session

import (
	"sync"
	"time"

	"sitecms/internal/models"

	"github.com/google/uuid"
)

type memStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

// NewMemoryStore returns an in-process Store. Useful for tests and for
// single-instance deployments that can tolerate sessions not surviving a
// restart.
func NewMemoryStore() Store {
	return &memStore{sessions: make(map[string]models.Session)}
}

func (s *memStore) Create(userID uint, role, token string, ttl time.Duration) (*models.Session, error) {
	sess := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		Token:     token,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	out := sess
	return &out, nil
}

func (s *memStore) Get(id string) (*models.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || time.Now().After(sess.ExpiresAt) {
		return nil, ErrNotFound
	}
	out := sess
	return &out, nil
}

func (s *memStore) Touch(id string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}
	sess.ExpiresAt = time.Now().Add(ttl)
	s.sessions[id] = sess
	return nil
}

func (s *memStore) Destroy(id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

func (s *memStore) DestroyForUser(userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}

func (s *memStore) DestroyExpired() error {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
		}
	}
	return nil
}

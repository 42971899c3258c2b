// Package session provides the server-side session store. The store is an
// interface so gate logic never depends on where sessions live: production
// uses the database table, tests can use the in-memory store.
package session

import (
	"errors"
	"time"

	"sitecms/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("session not found")

// Store tracks active sessions by opaque id.
type Store interface {
	// Create issues a new session for userID with the given role snapshot
	// and rotating token, valid for ttl.
	Create(userID uint, role, token string, ttl time.Duration) (*models.Session, error)

	// Get returns the session by id. Expired sessions are invisible and
	// return ErrNotFound.
	Get(id string) (*models.Session, error)

	// Touch extends the session's expiry by ttl from now (rolling expiry).
	Touch(id string, ttl time.Duration) error

	// Destroy removes the session. Destroying a missing session is not an
	// error.
	Destroy(id string) error

	// DestroyForUser removes every session owned by userID.
	DestroyForUser(userID uint) error

	// DestroyExpired purges sessions past their expiry.
	DestroyExpired() error
}

type gormStore struct {
	db *gorm.DB
}

// NewGormStore returns a Store backed by the sessions table.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Create(userID uint, role, token string, ttl time.Duration) (*models.Session, error) {
	sess := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		Token:     token,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := s.db.Create(sess).Error; err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *gormStore) Get(id string) (*models.Session, error) {
	var sess models.Session
	err := s.db.Where("id = ? AND expires_at > ?", id, time.Now()).First(&sess).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sess, nil
}

func (s *gormStore) Touch(id string, ttl time.Duration) error {
	return s.db.Model(&models.Session{}).
		Where("id = ?", id).
		Update("expires_at", time.Now().Add(ttl)).Error
}

func (s *gormStore) Destroy(id string) error {
	return s.db.Where("id = ?", id).Delete(&models.Session{}).Error
}

func (s *gormStore) DestroyForUser(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.Session{}).Error
}

func (s *gormStore) DestroyExpired() error {
	return s.db.Where("expires_at < ?", time.Now()).Delete(&models.Session{}).Error
}

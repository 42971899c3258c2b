package services

import (
	"errors"
	"fmt"
	"time"

	"sitecms/internal/config"
	"sitecms/internal/models"
	"sitecms/internal/rbac"
	"sitecms/internal/session"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials is what login failures look like to the client.
	// The wrapped variants below exist so the audit log can record the real
	// reason without leaking it in the HTTP response.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownUsername    = fmt.Errorf("%w: unknown username", ErrInvalidCredentials)
	ErrWrongPassword      = fmt.Errorf("%w: wrong password", ErrInvalidCredentials)

	// ErrSessionInvalid covers every 401 path in Resolve: missing or expired
	// session, deleted user, stale token after a newer login elsewhere.
	ErrSessionInvalid = errors.New("invalid session")
	ErrTokenMismatch  = fmt.Errorf("%w: token mismatch", ErrSessionInvalid)

	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrInvalidRole  = errors.New("invalid role")
)

type AuthService struct {
	cfg      *config.Config
	sessions session.Store
}

func NewAuthService(cfg *config.Config, sessions session.Store) *AuthService {
	return &AuthService{cfg: cfg, sessions: sessions}
}

// Sessions exposes the underlying store for housekeeping.
func (s *AuthService) Sessions() session.Store {
	return s.sessions
}

// HashPassword hashes a password using bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.Security.BcryptCost)
	return string(bytes), err
}

// VerifyPassword verifies a password against a hash
func (s *AuthService) VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// CreateUser creates a new user with one of the fixed roles
func (s *AuthService) CreateUser(username, password, role string) (*models.User, error) {
	if !rbac.IsValidRole(role) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	var existingUser models.User
	if err := models.DB.Where("username = ?", username).First(&existingUser).Error; err == nil {
		return nil, ErrUserExists
	}

	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	if err := models.DB.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and, on success, rotates the user's session
// token and creates a new session. Overwriting the stored token is what
// invalidates every session issued by an earlier login.
func (s *AuthService) Login(username, password string) (*models.Session, *models.User, error) {
	var user models.User
	if err := models.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUnknownUsername
		}
		return nil, nil, err
	}

	if !s.VerifyPassword(user.PasswordHash, password) {
		return nil, nil, ErrWrongPassword
	}

	token := uuid.NewString()
	now := time.Now()
	updates := map[string]interface{}{
		"session_token": token,
		"last_login_at": now,
	}
	if err := models.DB.Model(&user).Updates(updates).Error; err != nil {
		return nil, nil, err
	}
	user.SessionToken = token
	user.LastLoginAt = &now

	sess, err := s.sessions.Create(user.ID, user.Role, token, s.cfg.SessionTimeout())
	if err != nil {
		return nil, nil, err
	}

	return sess, &user, nil
}

// Resolve maps a session id back to a live session and its owning user. The
// user row is re-read on every call so role changes take effect mid-session,
// and the session token is checked against the row's current token so a
// newer login elsewhere (or an admin force-logout) invalidates this one.
// Storage faults are returned as-is; callers must treat them as a denial
// distinct from ErrSessionInvalid.
func (s *AuthService) Resolve(sessionID string) (*models.Session, *models.User, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, nil, ErrSessionInvalid
		}
		return nil, nil, err
	}

	var user models.User
	if err := models.DB.First(&user, sess.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSessionInvalid
		}
		return nil, nil, err
	}

	if user.SessionToken == "" || user.SessionToken != sess.Token {
		return nil, nil, ErrTokenMismatch
	}

	return sess, &user, nil
}

// Touch extends the session's expiry (rolling renewal on activity).
func (s *AuthService) Touch(sessionID string) error {
	return s.sessions.Touch(sessionID, s.cfg.SessionTimeout())
}

// Logout destroys the session record.
func (s *AuthService) Logout(sessionID string) error {
	return s.sessions.Destroy(sessionID)
}

// ForceLogout clears the target user's stored token. Every session issued to
// that user fails the token match on its next request; no session-kill list
// is needed.
func (s *AuthService) ForceLogout(userID uint) error {
	var user models.User
	if err := models.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return models.DB.Model(&user).Update("session_token", "").Error
}

// DestroyExpiredSessions purges expired session records
func (s *AuthService) DestroyExpiredSessions() error {
	return s.sessions.DestroyExpired()
}

// CreateDefaultUser creates the default admin user if the user table is empty
func (s *AuthService) CreateDefaultUser() error {
	var count int64
	models.DB.Model(&models.User{}).Count(&count)

	if count == 0 {
		_, err := s.CreateUser(
			s.cfg.DefaultUser.Username,
			s.cfg.DefaultUser.Password,
			s.cfg.DefaultUser.Role,
		)
		return err
	}

	return nil
}

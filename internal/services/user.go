package services

import (
	"errors"
	"fmt"

	"sitecms/internal/models"
	"sitecms/internal/rbac"

	"gorm.io/gorm"
)

var (
	ErrSelfRoleChange = errors.New("cannot change your own role")
	ErrSelfDelete     = errors.New("cannot delete your own account")
	ErrLastAdmin      = errors.New("cannot delete the last admin user")
)

type UserService struct {
	authService *AuthService
}

func NewUserService(authService *AuthService) *UserService {
	return &UserService{authService: authService}
}

// GetUsers returns all users
func (s *UserService) GetUsers() ([]models.User, error) {
	var users []models.User
	if err := models.DB.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns a specific user by ID
func (s *UserService) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := models.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a new user
func (s *UserService) CreateUser(username, password, role string) (*models.User, error) {
	return s.authService.CreateUser(username, password, role)
}

// ChangeRole assigns a new role to the target user. Admins cannot change
// their own role; the check happens before any write.
func (s *UserService) ChangeRole(actorID, targetID uint, role string) (*models.User, error) {
	if actorID == targetID {
		return nil, ErrSelfRoleChange
	}
	if !rbac.IsValidRole(role) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	var user models.User
	if err := models.DB.First(&user, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := models.DB.Model(&user).Update("role", role).Error; err != nil {
		return nil, err
	}
	user.Role = role
	return &user, nil
}

// UpdatePassword updates a user's password
func (s *UserService) UpdatePassword(id uint, newPassword string) error {
	var user models.User
	if err := models.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	hashedPassword, err := s.authService.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return models.DB.Model(&user).Update("password_hash", hashedPassword).Error
}

// DeleteUser deletes the target user. Admins cannot delete themselves, and
// the last admin account is protected.
func (s *UserService) DeleteUser(actorID, targetID uint) error {
	if actorID == targetID {
		return ErrSelfDelete
	}

	var user models.User
	if err := models.DB.First(&user, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.Role == string(rbac.RoleAdmin) {
		var adminCount int64
		models.DB.Model(&models.User{}).Where("role = ?", string(rbac.RoleAdmin)).Count(&adminCount)
		if adminCount <= 1 {
			return ErrLastAdmin
		}
	}

	if err := models.DB.Delete(&user).Error; err != nil {
		return err
	}

	// Remove the deleted user's session rows. Their sessions would already
	// fail to resolve against the missing user row; this keeps the table clean.
	return s.authService.Sessions().DestroyForUser(targetID)
}

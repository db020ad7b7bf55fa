package services

import (
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/config"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User service errors
var (
	ErrUserExists       = errors.New("user already exists")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidRole      = errors.New("invalid role")
	ErrSelfModification = errors.New("operation not allowed on your own account")
)

// InterfaceUserService defines the account management interface
type InterfaceUserService interface {
	GetAllUsers(page, pageSize int) ([]models.User, int64, error)
	GetUserByID(id uint) (*models.User, error)
	CreateUser(user *models.User) error
	UpdateUser(actorID, id uint, updates map[string]interface{}) (*models.User, error)
	DeleteUser(actorID, id uint) error
}

// UserService manages staff accounts
type UserService struct {
	DB     *gorm.DB
	Config *config.Config
	Auth   InterfaceAuthService
}

// NewUserService creates a new user service
func NewUserService(db *gorm.DB, cfg *config.Config, auth InterfaceAuthService) InterfaceUserService {
	return &UserService{
		DB:     db,
		Config: cfg,
		Auth:   auth,
	}
}

// GetAllUsers lists accounts
func (s *UserService) GetAllUsers(page, pageSize int) ([]models.User, int64, error) {
	var users []models.User
	var total int64
	if err := s.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := s.DB.Order("username ASC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// GetUserByID loads one account
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func validRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleClerk
}

// CreateUser creates an account after validating username, email and role
func (s *UserService) CreateUser(user *models.User) error {
	user.Username = strings.TrimSpace(user.Username)
	user.Email = strings.TrimSpace(user.Email)

	if user.Role == "" {
		user.Role = models.RoleClerk
	}
	if !validRole(user.Role) {
		return ErrInvalidRole
	}
	if user.Email != "" && !emailPattern.MatchString(user.Email) {
		return ErrInvalidEmail
	}
	if err := s.Auth.ValidatePasswordPolicy(user.Password); err != nil {
		return err
	}

	var count int64
	err := s.DB.Model(&models.User{}).
		Where("LOWER(username) = ? OR (email != '' AND LOWER(email) = ?)",
			strings.ToLower(user.Username), strings.ToLower(user.Email)).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrUserExists
	}

	return s.DB.Create(user).Error
}

// UpdateUser updates an account. Admins cannot change their own role.
func (s *UserService) UpdateUser(actorID, id uint, updates map[string]interface{}) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if role, ok := updates["role"].(string); ok {
		if !validRole(role) {
			return nil, ErrInvalidRole
		}
		if id == actorID && role != user.Role {
			return nil, ErrSelfModification
		}
		user.Role = role
	}
	if email, ok := updates["email"].(string); ok {
		email = strings.TrimSpace(email)
		if email != "" && !emailPattern.MatchString(email) {
			return nil, ErrInvalidEmail
		}
		var count int64
		err := s.DB.Model(&models.User{}).
			Where("LOWER(email) = ? AND id != ?", strings.ToLower(email), id).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrUserExists
		}
		user.Email = email
	}
	if username, ok := updates["username"].(string); ok {
		username = strings.TrimSpace(username)
		var count int64
		err := s.DB.Model(&models.User{}).
			Where("LOWER(username) = ? AND id != ?", strings.ToLower(username), id).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrUserExists
		}
		user.Username = username
	}
	if password, ok := updates["password"].(string); ok && password != "" {
		if err := s.Auth.ValidatePasswordPolicy(password); err != nil {
			return nil, err
		}
		user.Password = password
		user.MustChangePassword = true
	}

	if err := s.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account, detaching its audit rows and OTP codes.
// Admins cannot delete themselves.
func (s *UserService) DeleteUser(actorID, id uint) error {
	if actorID == id {
		return ErrSelfModification
	}

	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.TransactionLog{}).
			Where("user_id = ?", user.ID).
			Update("user_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.PasswordReset{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.LoginMfaCode{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}

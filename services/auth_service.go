package services

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/config"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/utils"
)

// Auth service errors
var (
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidOTP         = errors.New("invalid or expired verification code")
	ErrWeakPassword       = errors.New("password does not meet the security policy")
)

// InterfaceAuthService defines the authentication service interface
type InterfaceAuthService interface {
	Login(username, password, ip string) (*LoginResult, error)
	VerifyLoginOTP(mfaToken, code string) (*models.User, error)
	ChangePassword(userID uint, currentPassword, newPassword string) error
	RequestPasswordReset(username string) error
	ResetPassword(username, code, newPassword string) error
	ValidatePasswordPolicy(password string) error
	IsRateLimited(username, ip string) (bool, error)
	RecordLoginAttempt(username, ip string, success bool)
}

// LoginResult describes the outcome of a password check.
// When MFARequired is set the caller must complete the OTP step with
// MFAToken before a token may be issued.
type LoginResult struct {
	User        *models.User
	MFARequired bool
	MFAToken    string
}

// AuthService implements login, MFA and password reset flows
type AuthService struct {
	DB     *gorm.DB
	Config *config.Config
	Mail   InterfaceMailService
}

// NewAuthService creates a new auth service
func NewAuthService(db *gorm.DB, cfg *config.Config, mail InterfaceMailService) InterfaceAuthService {
	return &AuthService{
		DB:     db,
		Config: cfg,
		Mail:   mail,
	}
}

// IsRateLimited reports whether the IP or username has exceeded the
// failed-attempt budget inside the sliding window
func (s *AuthService) IsRateLimited(username, ip string) (bool, error) {
	window := time.Duration(s.Config.LoginRateLimitWindowSeconds) * time.Second
	cutoff := time.Now().Add(-window)

	var count int64
	err := s.DB.Model(&models.LoginAttempt{}).
		Where("success = ? AND created_at >= ?", false, cutoff).
		Where("ip_address = ? OR username = ?", ip, strings.ToLower(username)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count >= int64(s.Config.LoginRateLimitMaxAttempts), nil
}

// RecordLoginAttempt stores one login attempt row
func (s *AuthService) RecordLoginAttempt(username, ip string, success bool) {
	attempt := models.LoginAttempt{
		Username:  strings.ToLower(username),
		IPAddress: ip,
		Success:   success,
	}
	if err := s.DB.Create(&attempt).Error; err != nil {
		config.Error("failed to record login attempt: %v", err)
	}
}

// Login checks credentials. Admin accounts additionally get an emailed
// one-time code when MFA is enabled.
func (s *AuthService) Login(username, password, ip string) (*LoginResult, error) {
	limited, err := s.IsRateLimited(username, ip)
	if err != nil {
		return nil, err
	}
	if limited {
		return nil, ErrTooManyAttempts
	}

	var user models.User
	err = s.DB.Where("LOWER(username) = ?", strings.ToLower(username)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.RecordLoginAttempt(username, ip, false)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		s.RecordLoginAttempt(username, ip, false)
		return nil, ErrInvalidCredentials
	}

	s.RecordLoginAttempt(username, ip, true)

	if user.IsAdmin() && s.Config.AdminMFARequired {
		token, err := s.issueLoginOTP(&user)
		if err != nil {
			return nil, err
		}
		return &LoginResult{User: &user, MFARequired: true, MFAToken: token}, nil
	}

	return &LoginResult{User: &user}, nil
}

// issueLoginOTP stores and mails a second-factor code. It returns the
// opaque token the client must echo back on verification.
func (s *AuthService) issueLoginOTP(user *models.User) (string, error) {
	code, err := utils.GenerateOTPCode(6)
	if err != nil {
		return "", err
	}
	token, err := utils.GenerateSecureToken(16)
	if err != nil {
		return "", err
	}

	mfa := models.LoginMfaCode{
		UserID:    user.ID,
		OTPCode:   code,
		MFAToken:  token,
		ExpiresAt: time.Now().Add(time.Duration(s.Config.MFACodeTTLSeconds) * time.Second),
	}
	if err := s.DB.Create(&mfa).Error; err != nil {
		return "", err
	}

	if user.Email == "" {
		config.Warning("admin %s has no email address, MFA code cannot be delivered", user.Username)
		return token, nil
	}
	if err := s.Mail.SendLoginVerificationCode(user.Email, user.Username, code); err != nil {
		return "", err
	}
	return token, nil
}

// VerifyLoginOTP consumes a second-factor code and returns the user.
// The pending login is addressed by the opaque token issued at password
// time, never by a caller-chosen user ID.
func (s *AuthService) VerifyLoginOTP(mfaToken, code string) (*models.User, error) {
	var mfa models.LoginMfaCode
	err := s.DB.Where("mfa_token = ? AND used = ?", strings.TrimSpace(mfaToken), false).
		First(&mfa).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidOTP
		}
		return nil, err
	}
	if mfa.OTPCode != strings.ToUpper(strings.TrimSpace(code)) {
		return nil, ErrInvalidOTP
	}
	if mfa.Expired(time.Now()) {
		return nil, ErrInvalidOTP
	}

	if err := s.DB.Model(&mfa).Update("used", true).Error; err != nil {
		return nil, err
	}

	var user models.User
	if err := s.DB.First(&user, mfa.UserID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword verifies the current password before updating
func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		return err
	}

	if !utils.CheckPasswordHash(currentPassword, user.Password) {
		return ErrInvalidCredentials
	}
	if err := s.ValidatePasswordPolicy(newPassword); err != nil {
		return err
	}

	user.Password = newPassword
	user.MustChangePassword = false
	return s.DB.Save(&user).Error
}

// RequestPasswordReset issues a reset OTP when the account exists.
// Callers always return the same generic message to avoid enumeration.
func (s *AuthService) RequestPasswordReset(username string) error {
	var user models.User
	err := s.DB.Where("LOWER(username) = ?", strings.ToLower(username)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if user.Email == "" {
		return nil
	}

	code, err := utils.GenerateOTPCode(6)
	if err != nil {
		return err
	}

	reset := models.PasswordReset{
		UserID:    user.ID,
		OTPCode:   code,
		ExpiresAt: time.Now().Add(time.Duration(s.Config.MFACodeTTLSeconds) * time.Second),
	}
	if err := s.DB.Create(&reset).Error; err != nil {
		return err
	}
	return s.Mail.SendPasswordResetCode(user.Email, user.Username, code)
}

// ResetPassword consumes a reset OTP and sets a new password
func (s *AuthService) ResetPassword(username, code, newPassword string) error {
	var user models.User
	err := s.DB.Where("LOWER(username) = ?", strings.ToLower(username)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidOTP
		}
		return err
	}

	var reset models.PasswordReset
	err = s.DB.Where("user_id = ? AND otp_code = ? AND used = ?", user.ID, strings.ToUpper(strings.TrimSpace(code)), false).
		Order("created_at DESC").First(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidOTP
		}
		return err
	}
	if reset.Expired(time.Now()) {
		return ErrInvalidOTP
	}

	if err := s.ValidatePasswordPolicy(newPassword); err != nil {
		return err
	}

	if err := s.DB.Model(&reset).Update("used", true).Error; err != nil {
		return err
	}

	user.Password = newPassword
	user.MustChangePassword = false
	return s.DB.Save(&user).Error
}

// ValidatePasswordPolicy enforces minimum length plus character classes
func (s *AuthService) ValidatePasswordPolicy(password string) error {
	minLength := s.Config.PasswordMinLength
	if minLength < 1 {
		minLength = 10
	}
	if len(password) < minLength {
		return ErrWeakPassword
	}
	if strings.ContainsAny(password, " \t\n") {
		return ErrWeakPassword
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		return ErrWeakPassword
	}
	return nil
}

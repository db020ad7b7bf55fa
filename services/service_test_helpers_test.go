package services

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/config"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
)

// setupTestDB opens a throwaway SQLite database with all tables migrated
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Resident{},
		&models.DocumentType{},
		&models.Document{},
		&models.TransactionLog{},
		&models.LoginAttempt{},
		&models.PasswordReset{},
		&models.LoginMfaCode{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// testConfig returns a config suitable for service tests
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		DBDriver:                    "sqlite",
		JWTSecretKey:                "test-secret",
		JWTExpirationHours:          1,
		AdminMFARequired:            true,
		MFACodeTTLSeconds:           600,
		LoginRateLimitWindowSeconds: 600,
		LoginRateLimitMaxAttempts:   5,
		PasswordMinLength:           10,
		DefaultPageSize:             20,
		UploadDir:                   filepath.Join(t.TempDir(), "uploads"),
		BackupDir:                   filepath.Join(t.TempDir(), "backups"),
		PurgeValidityMonths:         6,
		PurgeGraceDays:              30,
	}
}

// stubMail records the last one-time codes instead of sending mail
type stubMail struct {
	resetCode string
	loginCode string
	resetTo   string
	loginTo   string
}

func (m *stubMail) SendPasswordResetCode(to, username, code string) error {
	m.resetTo = to
	m.resetCode = code
	return nil
}

func (m *stubMail) SendLoginVerificationCode(to, username, code string) error {
	m.loginTo = to
	m.loginCode = code
	return nil
}

// createTestUser inserts a user, relying on the model hook to hash
func createTestUser(t *testing.T, db *gorm.DB, username, password, role, email string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    email,
		Password: password,
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

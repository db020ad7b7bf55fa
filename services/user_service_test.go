package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
)

func newUserService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	cfg := testConfig(t)
	auth := NewAuthService(db, cfg, &stubMail{})
	return NewUserService(db, cfg, auth).(*UserService), db
}

func TestCreateUser(t *testing.T) {
	svc, _ := newUserService(t)

	user := &models.User{Username: "mreyes", Email: "mreyes@example.com", Password: "S3cure!Pass01"}
	require.NoError(t, svc.CreateUser(user))
	assert.Equal(t, models.RoleClerk, user.Role)
	// The model hook hashed the password
	assert.NotEqual(t, "S3cure!Pass01", user.Password)

	// Duplicate username, case insensitive
	dup := &models.User{Username: "MREYES", Email: "other@example.com", Password: "S3cure!Pass01"}
	assert.ErrorIs(t, svc.CreateUser(dup), ErrUserExists)

	// Duplicate email
	dupEmail := &models.User{Username: "other", Email: "mreyes@example.com", Password: "S3cure!Pass01"}
	assert.ErrorIs(t, svc.CreateUser(dupEmail), ErrUserExists)

	bad := &models.User{Username: "x1", Email: "not-an-email", Password: "S3cure!Pass01"}
	assert.ErrorIs(t, svc.CreateUser(bad), ErrInvalidEmail)

	badRole := &models.User{Username: "x2", Email: "x2@example.com", Password: "S3cure!Pass01", Role: "owner"}
	assert.ErrorIs(t, svc.CreateUser(badRole), ErrInvalidRole)

	weak := &models.User{Username: "x3", Email: "x3@example.com", Password: "weak"}
	assert.ErrorIs(t, svc.CreateUser(weak), ErrWeakPassword)
}

func TestUpdateUserSelfRoleGuard(t *testing.T) {
	svc, db := newUserService(t)

	admin := createTestUser(t, db, "admin", "S3cure!Pass01", models.RoleAdmin, "admin@example.com")
	clerk := createTestUser(t, db, "clerk1", "S3cure!Pass01", models.RoleClerk, "clerk1@example.com")

	// An admin may promote someone else
	updated, err := svc.UpdateUser(admin.ID, clerk.ID, map[string]interface{}{"role": models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)

	// But not change their own role
	_, err = svc.UpdateUser(admin.ID, admin.ID, map[string]interface{}{"role": models.RoleClerk})
	assert.ErrorIs(t, err, ErrSelfModification)

	// Setting a password forces a change on next login
	updated, err = svc.UpdateUser(admin.ID, clerk.ID, map[string]interface{}{"password": "N3wSecure!Pass"})
	require.NoError(t, err)
	assert.True(t, updated.MustChangePassword)

	_, err = svc.UpdateUser(admin.ID, clerk.ID, map[string]interface{}{"password": "weak"})
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestDeleteUser(t *testing.T) {
	svc, db := newUserService(t)

	admin := createTestUser(t, db, "admin", "S3cure!Pass01", models.RoleAdmin, "admin@example.com")
	clerk := createTestUser(t, db, "clerk1", "S3cure!Pass01", models.RoleClerk, "clerk1@example.com")

	// Audit rows and OTP codes referencing the account
	logEntry := models.TransactionLog{UserID: &clerk.ID, Action: "login", EntityType: "user", EntityID: clerk.ID}
	require.NoError(t, db.Create(&logEntry).Error)
	reset := models.PasswordReset{UserID: clerk.ID, OTPCode: "ABC123"}
	require.NoError(t, db.Create(&reset).Error)

	// Self-deletion is refused
	assert.ErrorIs(t, svc.DeleteUser(admin.ID, admin.ID), ErrSelfModification)

	require.NoError(t, svc.DeleteUser(admin.ID, clerk.ID))

	// The audit row survives without an owner
	var kept models.TransactionLog
	require.NoError(t, db.First(&kept, logEntry.ID).Error)
	assert.Nil(t, kept.UserID)

	// OTP rows are gone
	var otpCount int64
	db.Model(&models.PasswordReset{}).Where("user_id = ?", clerk.ID).Count(&otpCount)
	assert.Equal(t, int64(0), otpCount)

	_, err := svc.GetUserByID(clerk.ID)
	assert.Error(t, err)
}

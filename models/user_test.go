package models

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func userTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))
	return db
}

func TestCreateHashesPasswordOnce(t *testing.T) {
	db := userTestDB(t)

	user := User{Username: "clerk1", Email: "clerk1@example.com", Password: "S3cure!Pass01", Role: RoleClerk}
	require.NoError(t, db.Create(&user).Error)

	var stored User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Len(t, stored.Password, 60)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("S3cure!Pass01")))
}

func TestSaveKeepsExistingHash(t *testing.T) {
	db := userTestDB(t)

	user := User{Username: "clerk1", Email: "clerk1@example.com", Password: "S3cure!Pass01", Role: RoleClerk}
	require.NoError(t, db.Create(&user).Error)

	var stored User
	require.NoError(t, db.First(&stored, user.ID).Error)
	hash := stored.Password

	// Saving the record without touching the password must not rehash it
	stored.Email = "renamed@example.com"
	require.NoError(t, db.Save(&stored).Error)

	var again User
	require.NoError(t, db.First(&again, user.ID).Error)
	assert.Equal(t, hash, again.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(again.Password), []byte("S3cure!Pass01")))
}

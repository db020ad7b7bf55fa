package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/utils"
)

// User roles
const (
	RoleAdmin = "admin"
	RoleClerk = "clerk"
)

// User represents a staff account (admin or clerk)
type User struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Username           string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email              string    `gorm:"type:varchar(100);uniqueIndex" json:"email"`
	Password           string    `gorm:"type:varchar(100);not null" json:"-"` // Password not exposed in JSON
	Role               string    `gorm:"type:varchar(20);not null;default:clerk" json:"role"`
	MustChangePassword bool      `gorm:"default:false" json:"must_change_password"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// IsAdmin reports whether the account has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// BeforeSave is a GORM hook that runs on create and update
func (u *User) BeforeSave(tx *gorm.DB) error {
	// bcrypt hashes are 60 characters, shorter values are plaintext
	if u.Password != "" && len(u.Password) < 60 {
		hashedPassword, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashedPassword
	}
	return nil
}

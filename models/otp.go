package models

import "time"

// PasswordReset stores a one-time password reset code
type PasswordReset struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	OTPCode   string    `gorm:"type:varchar(12);not null" json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `gorm:"default:false" json:"used"`
	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Expired reports whether the reset code is no longer valid
func (p *PasswordReset) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// LoginMfaCode stores a one-time second-factor code for admin logins.
// MFAToken is the opaque handle the client echoes back on verify, so the
// pending login never exposes a user ID.
type LoginMfaCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	OTPCode   string    `gorm:"type:varchar(12);not null" json:"-"`
	MFAToken  string    `gorm:"type:varchar(64);uniqueIndex" json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `gorm:"default:false" json:"used"`
	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Expired reports whether the code is no longer valid
func (m *LoginMfaCode) Expired(now time.Time) bool {
	return now.After(m.ExpiresAt)
}

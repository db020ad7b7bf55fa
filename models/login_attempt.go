package models

import "time"

// LoginAttempt records one login try for rate limiting
type LoginAttempt struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(50);index" json:"username"`
	IPAddress string    `gorm:"type:varchar(45);index" json:"ip_address"`
	Success   bool      `json:"success"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

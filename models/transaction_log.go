package models

import "time"

// TransactionLog represents an audit trail entry for a mutating operation
type TransactionLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     *uint     `gorm:"index" json:"user_id"`
	Action     string    `gorm:"type:varchar(100);not null" json:"action"`
	EntityType string    `gorm:"type:varchar(50);index" json:"entity_type"`
	EntityID   uint      `gorm:"index" json:"entity_id"`
	IPAddress  string    `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent  string    `gorm:"type:varchar(255)" json:"user_agent"`
	Meta       string    `gorm:"type:text" json:"meta"`
	Timestamp  time.Time `gorm:"index" json:"timestamp"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

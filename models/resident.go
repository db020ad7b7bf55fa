package models

import (
	"strings"
	"time"
)

// Gender choices
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Marital status choices
var MaritalStatuses = []string{"Single", "Married", "Separated", "Widowed", "Annulled", "Other"}

// Resident represents a registered barangay resident
type Resident struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	BarangayID    *string    `gorm:"type:varchar(20);uniqueIndex" json:"barangay_id"`
	FirstName     string     `gorm:"type:varchar(80);not null" json:"first_name"`
	MiddleName    string     `gorm:"type:varchar(80)" json:"middle_name"`
	LastName      string     `gorm:"type:varchar(80);not null" json:"last_name"`
	Gender        string     `gorm:"type:varchar(10);not null" json:"gender"`
	BirthDate     *time.Time `json:"birth_date"`
	MaritalStatus string     `gorm:"type:varchar(20)" json:"marital_status"`
	Address       string     `gorm:"type:varchar(255)" json:"address"`
	PhotoPath     string     `gorm:"type:varchar(255)" json:"photo_path"`
	IsArchived    bool       `gorm:"default:false;index" json:"is_archived"`
	CreatedByID   *uint      `json:"created_by_id"`
	UpdatedByID   *uint      `json:"updated_by_id"`
	ArchivedByID  *uint      `json:"archived_by_id"`
	ArchivedAt    *time.Time `json:"archived_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relations
	Documents []Document `gorm:"foreignKey:ResidentID" json:"documents,omitempty"`
}

// FullName returns "First Middle Last" with empty parts skipped
func (r *Resident) FullName() string {
	parts := []string{r.FirstName, r.MiddleName, r.LastName}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, strings.TrimSpace(p))
		}
	}
	return strings.Join(nonEmpty, " ")
}

// DisplayName returns "Last, First" for report rows
func (r *Resident) DisplayName() string {
	return strings.TrimSpace(r.LastName) + ", " + strings.TrimSpace(r.FirstName)
}

// ValidGender reports whether the value is one of the accepted choices
func ValidGender(gender string) bool {
	return gender == GenderMale || gender == GenderFemale || gender == GenderOther
}

// ValidMaritalStatus reports whether the value is one of the accepted choices
func ValidMaritalStatus(status string) bool {
	if status == "" {
		return true
	}
	for _, s := range MaritalStatuses {
		if s == status {
			return true
		}
	}
	return false
}

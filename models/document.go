package models

import "time"

// Document statuses
const (
	StatusDraft    = "draft"
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusIssued   = "issued"
)

// DraftLikeStatuses are the statuses an unissued document may hold.
// A status filter of "draft" matches all of them.
var DraftLikeStatuses = []string{StatusDraft, StatusPending, StatusApproved}

// Document represents a certificate issued (or drafted) for a resident
type Document struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ResidentID     uint       `gorm:"not null;index" json:"resident_id"`
	DocumentTypeID uint       `gorm:"not null;index" json:"document_type_id"`
	Status         string     `gorm:"type:varchar(20);not null;default:draft;index" json:"status"`
	Details        string     `gorm:"type:text" json:"details"`
	IssueDate      *time.Time `gorm:"index" json:"issue_date"`
	FilePath       string     `gorm:"type:varchar(255)" json:"file_path"`
	PhotoPath      string     `gorm:"type:varchar(255)" json:"photo_path"`
	IsArchived     bool       `gorm:"default:false;index" json:"is_archived"`
	CreatedByID    *uint      `json:"created_by_id"`
	UpdatedByID    *uint      `json:"updated_by_id"`
	ApprovedByID   *uint      `json:"approved_by_id"`
	IssuedByID     *uint      `json:"issued_by_id"`
	ArchivedByID   *uint      `json:"archived_by_id"`
	ApprovedAt     *time.Time `json:"approved_at"`
	IssuedAt       *time.Time `json:"issued_at"`
	ArchivedAt     *time.Time `json:"archived_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	Resident     *Resident     `gorm:"foreignKey:ResidentID" json:"resident,omitempty"`
	DocumentType *DocumentType `gorm:"foreignKey:DocumentTypeID" json:"document_type,omitempty"`
}

// IsDraftLike reports whether the document can still be edited or issued
func (d *Document) IsDraftLike() bool {
	for _, s := range DraftLikeStatuses {
		if d.Status == s {
			return true
		}
	}
	return false
}

// IsIssued reports whether the document has been finalized
func (d *Document) IsIssued() bool {
	return d.Status == StatusIssued
}

package models

import "time"

// PDF template identifiers
const (
	TemplateBarangayID        = "barangay_id"
	TemplateBarangayClearance = "barangay_clearance"
	TemplateBusinessClearance = "business_clearance"
	TemplateResidency         = "residency"
	TemplateIndigency         = "indigency"
	TemplateGoodMoral         = "good_moral"
	TemplateOther             = "other"
)

// DocumentType represents an issuable certificate kind
type DocumentType struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description   string    `gorm:"type:varchar(255)" json:"description"`
	TemplatePath  string    `gorm:"type:varchar(50)" json:"template_path"`
	RequiresPhoto bool      `gorm:"default:false" json:"requires_photo"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DefaultDocumentTypes returns the types seeded on first startup
func DefaultDocumentTypes() []DocumentType {
	return []DocumentType{
		{Name: "Barangay ID", RequiresPhoto: true, TemplatePath: TemplateBarangayID},
		{Name: "Barangay Clearance", TemplatePath: TemplateBarangayClearance},
		{Name: "Business Clearance", TemplatePath: TemplateBusinessClearance},
		{Name: "Certificate of Residency", TemplatePath: TemplateResidency},
		{Name: "Certificate of Indigency", TemplatePath: TemplateIndigency},
		{Name: "Certificate of Good Moral", TemplatePath: TemplateGoodMoral},
		{Name: "Other Certificate", TemplatePath: TemplateOther},
	}
}

// ValidTemplate reports whether the template identifier is known
func ValidTemplate(template string) bool {
	switch template {
	case TemplateBarangayID, TemplateBarangayClearance, TemplateBusinessClearance,
		TemplateResidency, TemplateIndigency, TemplateGoodMoral, TemplateOther:
		return true
	}
	return false
}

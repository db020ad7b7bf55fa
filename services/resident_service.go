package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/config"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/utils"
)

var barangayIDPattern = regexp.MustCompile(`^BRGY-\d{4}-\d{5}$`)

// Resident service errors
var (
	ErrResidentNotFound     = errors.New("resident not found")
	ErrResidentArchived     = errors.New("resident is archived")
	ErrDuplicateResident    = errors.New("a resident with the same name and birth date already exists")
	ErrDuplicateArchived    = errors.New("a matching resident exists in the archive, restore the record instead")
	ErrBarangayIDTaken      = errors.New("barangay ID is already in use")
	ErrInvalidBarangayID    = errors.New("barangay ID must match BRGY-YYYY-NNNNN")
	ErrBirthDateInFuture    = errors.New("birth date cannot be in the future")
	ErrInvalidGender        = errors.New("invalid gender")
	ErrInvalidMaritalStatus = errors.New("invalid marital status")
	ErrMissingRequiredName  = errors.New("first name and last name are required")
)

// ResidentFilter narrows resident listings
type ResidentFilter struct {
	Search   string
	Archived bool
}

// ResidentInput carries create/update fields
type ResidentInput struct {
	BarangayID    string
	FirstName     string
	MiddleName    string
	LastName      string
	Gender        string
	BirthDate     *time.Time
	MaritalStatus string
	Address       string
	PhotoDataURL  string
}

// InterfaceResidentService defines the resident service interface
type InterfaceResidentService interface {
	GetAllResidents(filter ResidentFilter, page, pageSize int) ([]models.Resident, int64, error)
	GetResidentByID(id uint) (*models.Resident, error)
	CreateResident(actorID uint, input ResidentInput) (*models.Resident, error)
	UpdateResident(actorID, id uint, input ResidentInput) (*models.Resident, error)
	ArchiveResident(actorID, id uint) error
	ArchiveResidents(actorID uint, ids []uint) (int, error)
	RestoreResident(actorID, id uint) error
	GetResidentDocuments(id uint, status string, archived bool, page, pageSize int) ([]models.Document, int64, error)
}

// ResidentService manages resident records
type ResidentService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewResidentService creates a new resident service
func NewResidentService(db *gorm.DB, cfg *config.Config) InterfaceResidentService {
	return &ResidentService{
		DB:     db,
		Config: cfg,
	}
}

// GetAllResidents lists residents with search and archive filters
func (s *ResidentService) GetAllResidents(filter ResidentFilter, page, pageSize int) ([]models.Resident, int64, error) {
	var residents []models.Resident
	var total int64

	query := s.DB.Model(&models.Resident{}).Where("is_archived = ?", filter.Archived)
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(middle_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(barangay_id) LIKE ? OR LOWER(address) LIKE ?",
			pattern, pattern, pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("last_name ASC, first_name ASC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&residents).Error; err != nil {
		return nil, 0, err
	}
	return residents, total, nil
}

// GetResidentByID loads one resident
func (s *ResidentService) GetResidentByID(id uint) (*models.Resident, error) {
	var resident models.Resident
	if err := s.DB.First(&resident, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, err
	}
	return &resident, nil
}

func (s *ResidentService) validateInput(input *ResidentInput) error {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.MiddleName = strings.TrimSpace(input.MiddleName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.BarangayID = strings.ToUpper(strings.TrimSpace(input.BarangayID))

	if input.FirstName == "" || input.LastName == "" {
		return ErrMissingRequiredName
	}
	if !models.ValidGender(input.Gender) {
		return ErrInvalidGender
	}
	if !models.ValidMaritalStatus(input.MaritalStatus) {
		return ErrInvalidMaritalStatus
	}
	if input.BirthDate != nil && input.BirthDate.After(time.Now()) {
		return ErrBirthDateInFuture
	}
	if input.BarangayID != "" && !barangayIDPattern.MatchString(input.BarangayID) {
		return ErrInvalidBarangayID
	}
	return nil
}

// checkDuplicate looks for a resident with the same name and birth date
func (s *ResidentService) checkDuplicate(input ResidentInput, excludeID uint) error {
	query := s.DB.Model(&models.Resident{}).
		Where("LOWER(first_name) = ? AND LOWER(last_name) = ?",
			strings.ToLower(input.FirstName), strings.ToLower(input.LastName))
	if input.BirthDate != nil {
		query = query.Where("birth_date = ?", input.BirthDate)
	} else {
		query = query.Where("birth_date IS NULL")
	}
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}

	var matches []models.Resident
	if err := query.Find(&matches).Error; err != nil {
		return err
	}
	for _, m := range matches {
		if m.IsArchived {
			return ErrDuplicateArchived
		}
	}
	if len(matches) > 0 {
		return ErrDuplicateResident
	}
	return nil
}

// checkBarangayIDUnique verifies an explicit barangay ID is unused
func (s *ResidentService) checkBarangayIDUnique(barangayID string, excludeID uint) error {
	query := s.DB.Model(&models.Resident{}).Where("barangay_id = ?", barangayID)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrBarangayIDTaken
	}
	return nil
}

// CreateResident registers a resident. An omitted barangay ID is
// generated as BRGY-<year>-<id> after the row exists.
func (s *ResidentService) CreateResident(actorID uint, input ResidentInput) (*models.Resident, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}
	if err := s.checkDuplicate(input, 0); err != nil {
		return nil, err
	}
	if input.BarangayID != "" {
		if err := s.checkBarangayIDUnique(input.BarangayID, 0); err != nil {
			return nil, err
		}
	}

	resident := &models.Resident{
		FirstName:     input.FirstName,
		MiddleName:    input.MiddleName,
		LastName:      input.LastName,
		Gender:        input.Gender,
		BirthDate:     input.BirthDate,
		MaritalStatus: input.MaritalStatus,
		Address:       strings.TrimSpace(input.Address),
		CreatedByID:   &actorID,
	}
	if input.BarangayID != "" {
		resident.BarangayID = &input.BarangayID
	}

	if input.PhotoDataURL != "" {
		photoPath, err := utils.SaveImageDataURL(input.PhotoDataURL, s.Config.UploadDir, "residents")
		if err != nil {
			return nil, err
		}
		resident.PhotoPath = photoPath
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(resident).Error; err != nil {
			return err
		}
		if resident.BarangayID == nil {
			generated := fmt.Sprintf("BRGY-%d-%05d", time.Now().Year(), resident.ID)
			resident.BarangayID = &generated
			return tx.Model(resident).Update("barangay_id", generated).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resident, nil
}

// UpdateResident edits an active resident with the same validations
func (s *ResidentService) UpdateResident(actorID, id uint, input ResidentInput) (*models.Resident, error) {
	resident, err := s.GetResidentByID(id)
	if err != nil {
		return nil, err
	}
	if resident.IsArchived {
		return nil, ErrResidentArchived
	}

	if err := s.validateInput(&input); err != nil {
		return nil, err
	}
	if err := s.checkDuplicate(input, id); err != nil {
		return nil, err
	}
	if input.BarangayID != "" {
		if err := s.checkBarangayIDUnique(input.BarangayID, id); err != nil {
			return nil, err
		}
		resident.BarangayID = &input.BarangayID
	}

	resident.FirstName = input.FirstName
	resident.MiddleName = input.MiddleName
	resident.LastName = input.LastName
	resident.Gender = input.Gender
	resident.BirthDate = input.BirthDate
	resident.MaritalStatus = input.MaritalStatus
	resident.Address = strings.TrimSpace(input.Address)
	resident.UpdatedByID = &actorID

	if input.PhotoDataURL != "" {
		photoPath, err := utils.SaveImageDataURL(input.PhotoDataURL, s.Config.UploadDir, "residents")
		if err != nil {
			return nil, err
		}
		resident.PhotoPath = photoPath
	}

	if err := s.DB.Save(resident).Error; err != nil {
		return nil, err
	}
	return resident, nil
}

// ArchiveResident soft-deletes a resident and its active documents
func (s *ResidentService) ArchiveResident(actorID, id uint) error {
	resident, err := s.GetResidentByID(id)
	if err != nil {
		return err
	}
	if resident.IsArchived {
		return ErrResidentArchived
	}

	now := time.Now()
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(resident).Updates(map[string]interface{}{
			"is_archived":    true,
			"archived_at":    now,
			"archived_by_id": actorID,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Document{}).
			Where("resident_id = ? AND is_archived = ?", id, false).
			Updates(map[string]interface{}{
				"is_archived":    true,
				"archived_at":    now,
				"archived_by_id": actorID,
			}).Error
	})
}

// ArchiveResidents archives several residents, skipping missing or already
// archived rows, and returns the number archived
func (s *ResidentService) ArchiveResidents(actorID uint, ids []uint) (int, error) {
	archived := 0
	for _, id := range ids {
		err := s.ArchiveResident(actorID, id)
		if err == nil {
			archived++
			continue
		}
		if errors.Is(err, ErrResidentNotFound) || errors.Is(err, ErrResidentArchived) {
			continue
		}
		return archived, err
	}
	return archived, nil
}

// RestoreResident brings an archived resident back
func (s *ResidentService) RestoreResident(actorID, id uint) error {
	resident, err := s.GetResidentByID(id)
	if err != nil {
		return err
	}
	if !resident.IsArchived {
		return nil
	}

	return s.DB.Model(resident).Updates(map[string]interface{}{
		"is_archived":    false,
		"archived_at":    nil,
		"archived_by_id": nil,
		"updated_by_id":  actorID,
	}).Error
}

// GetResidentDocuments lists a resident's documents with status filtering.
// A status of "draft" matches all unissued statuses.
func (s *ResidentService) GetResidentDocuments(id uint, status string, archived bool, page, pageSize int) ([]models.Document, int64, error) {
	if _, err := s.GetResidentByID(id); err != nil {
		return nil, 0, err
	}

	var documents []models.Document
	var total int64

	query := s.DB.Model(&models.Document{}).
		Where("resident_id = ? AND is_archived = ?", id, archived)
	if status != "" {
		if status == models.StatusDraft {
			query = query.Where("status IN ?", models.DraftLikeStatuses)
		} else {
			query = query.Where("status = ?", status)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Preload("DocumentType").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&documents).Error; err != nil {
		return nil, 0, err
	}
	return documents, total, nil
}

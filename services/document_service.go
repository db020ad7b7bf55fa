package services

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/config"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/utils"
)

// Document service errors
var (
	ErrDocumentNotFound  = errors.New("document not found")
	ErrDocumentImmutable = errors.New("issued documents cannot be edited")
	ErrDocumentStatus    = errors.New("operation not allowed in the current document status")
	ErrDocumentArchived  = errors.New("document is archived")
	ErrPhotoRequired     = errors.New("this document type requires a photo")
	ErrIssueDateInFuture = errors.New("issue date cannot be in the future")
	ErrIssueBeforeBirth  = errors.New("issue date cannot be before the resident's birth date")
	ErrDocumentNotIssued = errors.New("only issued documents can be downloaded")
)

// DocumentFilter narrows document listings
type DocumentFilter struct {
	Search   string
	TypeID   uint
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
	Archived bool
	SortBy   string // "issue_date" or "created_at"
	SortDesc bool
}

// DocumentInput carries create/update fields
type DocumentInput struct {
	ResidentID     uint
	DocumentTypeID uint
	Details        string
	IssueDate      *time.Time
	PhotoDataURL   string
}

// PurgeResult summarizes one purge pass
type PurgeResult struct {
	Archived int  `json:"archived"`
	Deleted  int  `json:"deleted"`
	DryRun   bool `json:"dry_run"`
}

// InterfaceDocumentService defines the document workflow interface
type InterfaceDocumentService interface {
	GetAllDocuments(filter DocumentFilter, page, pageSize int) ([]models.Document, int64, error)
	GetDocumentByID(id uint) (*models.Document, error)
	CreateDocument(actorID uint, input DocumentInput) (*models.Document, error)
	UpdateDocument(actorID, id uint, input DocumentInput) (*models.Document, error)
	IssueDocument(actorID, id uint) (*models.Document, error)
	ReviseDocument(actorID, id uint) (*models.Document, error)
	ArchiveDocument(actorID, id uint) error
	ArchiveDocuments(actorID uint, ids []uint) (int, error)
	RestoreDocument(actorID, id uint) error
	GetDocumentFile(id uint) (string, error)
	PurgeExpired(validityMonths, graceDays int, dryRun bool) (*PurgeResult, error)
}

// DocumentService manages the certificate lifecycle
type DocumentService struct {
	DB     *gorm.DB
	Config *config.Config
	PDF    InterfacePDFService
}

// NewDocumentService creates a new document service
func NewDocumentService(db *gorm.DB, cfg *config.Config, pdf InterfacePDFService) InterfaceDocumentService {
	return &DocumentService{
		DB:     db,
		Config: cfg,
		PDF:    pdf,
	}
}

// GetAllDocuments lists documents with filters, sorting and pagination
func (s *DocumentService) GetAllDocuments(filter DocumentFilter, page, pageSize int) ([]models.Document, int64, error) {
	var documents []models.Document
	var total int64

	query := s.DB.Model(&models.Document{}).
		Joins("JOIN residents ON residents.id = documents.resident_id").
		Joins("JOIN document_types ON document_types.id = documents.document_type_id").
		Where("documents.is_archived = ?", filter.Archived)

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(residents.first_name) LIKE ? OR LOWER(residents.last_name) LIKE ? OR LOWER(document_types.name) LIKE ? OR LOWER(documents.details) LIKE ?",
			pattern, pattern, pattern, pattern)
	}
	if filter.TypeID > 0 {
		query = query.Where("documents.document_type_id = ?", filter.TypeID)
	}
	if filter.Status != "" {
		if filter.Status == models.StatusDraft {
			query = query.Where("documents.status IN ?", models.DraftLikeStatuses)
		} else {
			query = query.Where("documents.status = ?", filter.Status)
		}
	}
	if filter.DateFrom != nil {
		query = query.Where("documents.issue_date >= ?", filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("documents.issue_date <= ?", filter.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortColumn := "documents.created_at"
	if filter.SortBy == "issue_date" {
		sortColumn = "documents.issue_date"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	if err := query.Preload("Resident").Preload("DocumentType").
		Order(sortColumn + " " + direction).
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&documents).Error; err != nil {
		return nil, 0, err
	}
	return documents, total, nil
}

// GetDocumentByID loads one document with its relations
func (s *DocumentService) GetDocumentByID(id uint) (*models.Document, error) {
	var doc models.Document
	err := s.DB.Preload("Resident").Preload("DocumentType").First(&doc, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// validateDates checks the issue date against today and the birth date
func validateDates(issueDate *time.Time, resident *models.Resident) error {
	if issueDate == nil {
		return nil
	}
	if issueDate.After(time.Now()) {
		return ErrIssueDateInFuture
	}
	if resident.BirthDate != nil && issueDate.Before(*resident.BirthDate) {
		return ErrIssueBeforeBirth
	}
	return nil
}

// CreateDocument creates a draft for an active resident
func (s *DocumentService) CreateDocument(actorID uint, input DocumentInput) (*models.Document, error) {
	var resident models.Resident
	if err := s.DB.First(&resident, input.ResidentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, err
	}
	if resident.IsArchived {
		return nil, ErrResidentArchived
	}

	var docType models.DocumentType
	if err := s.DB.First(&docType, input.DocumentTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentTypeNotFound
		}
		return nil, err
	}

	if err := validateDates(input.IssueDate, &resident); err != nil {
		return nil, err
	}

	doc := &models.Document{
		ResidentID:     input.ResidentID,
		DocumentTypeID: input.DocumentTypeID,
		Status:         models.StatusDraft,
		Details:        strings.TrimSpace(input.Details),
		IssueDate:      input.IssueDate,
		CreatedByID:    &actorID,
	}

	if input.PhotoDataURL != "" {
		photoPath, err := utils.SaveImageDataURL(input.PhotoDataURL, s.Config.UploadDir, "captures")
		if err != nil {
			return nil, err
		}
		doc.PhotoPath = photoPath
	}

	if err := s.DB.Create(doc).Error; err != nil {
		return nil, err
	}
	doc.Resident = &resident
	doc.DocumentType = &docType
	return doc, nil
}

// UpdateDocument edits a draft-like document. Editing an approved or
// pending document resets it to draft and clears the approval fields.
func (s *DocumentService) UpdateDocument(actorID, id uint, input DocumentInput) (*models.Document, error) {
	doc, err := s.GetDocumentByID(id)
	if err != nil {
		return nil, err
	}
	if doc.IsIssued() {
		return nil, ErrDocumentImmutable
	}
	if doc.IsArchived {
		return nil, ErrDocumentArchived
	}

	if err := validateDates(input.IssueDate, doc.Resident); err != nil {
		return nil, err
	}

	doc.Details = strings.TrimSpace(input.Details)
	doc.IssueDate = input.IssueDate
	doc.UpdatedByID = &actorID

	if input.DocumentTypeID > 0 && input.DocumentTypeID != doc.DocumentTypeID {
		var docType models.DocumentType
		if err := s.DB.First(&docType, input.DocumentTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDocumentTypeNotFound
			}
			return nil, err
		}
		doc.DocumentTypeID = input.DocumentTypeID
		doc.DocumentType = &docType
	}

	if input.PhotoDataURL != "" {
		photoPath, err := utils.SaveImageDataURL(input.PhotoDataURL, s.Config.UploadDir, "captures")
		if err != nil {
			return nil, err
		}
		doc.PhotoPath = photoPath
	}

	// Editing an approved or pending draft sends it back to draft
	if doc.Status == models.StatusApproved || doc.Status == models.StatusPending {
		doc.Status = models.StatusDraft
		doc.ApprovedByID = nil
		doc.ApprovedAt = nil
	}

	if err := s.DB.Save(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// IssueDocument finalizes a draft-like document and generates its PDF
func (s *DocumentService) IssueDocument(actorID, id uint) (*models.Document, error) {
	doc, err := s.GetDocumentByID(id)
	if err != nil {
		return nil, err
	}
	if !doc.IsDraftLike() {
		return nil, ErrDocumentStatus
	}
	if doc.IsArchived {
		return nil, ErrDocumentArchived
	}

	if doc.DocumentType.RequiresPhoto && doc.PhotoPath == "" && doc.Resident.PhotoPath == "" {
		return nil, ErrPhotoRequired
	}

	now := time.Now()
	if doc.IssueDate == nil {
		doc.IssueDate = &now
	}
	doc.Status = models.StatusIssued
	doc.IssuedAt = &now
	doc.IssuedByID = &actorID
	doc.ApprovedByID = nil
	doc.ApprovedAt = nil

	filePath, err := s.PDF.GenerateDocumentPDF(doc)
	if err != nil {
		return nil, err
	}
	doc.FilePath = filePath

	if err := s.DB.Save(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// ReviseDocument creates a new draft copy of an issued document
func (s *DocumentService) ReviseDocument(actorID, id uint) (*models.Document, error) {
	doc, err := s.GetDocumentByID(id)
	if err != nil {
		return nil, err
	}
	if !doc.IsIssued() {
		return nil, ErrDocumentStatus
	}

	draft := &models.Document{
		ResidentID:     doc.ResidentID,
		DocumentTypeID: doc.DocumentTypeID,
		Status:         models.StatusDraft,
		Details:        doc.Details,
		PhotoPath:      doc.PhotoPath,
		CreatedByID:    &actorID,
	}
	if err := s.DB.Create(draft).Error; err != nil {
		return nil, err
	}
	draft.Resident = doc.Resident
	draft.DocumentType = doc.DocumentType
	return draft, nil
}

// ArchiveDocument soft-deletes a document
func (s *DocumentService) ArchiveDocument(actorID, id uint) error {
	doc, err := s.GetDocumentByID(id)
	if err != nil {
		return err
	}
	if doc.IsArchived {
		return ErrDocumentArchived
	}

	now := time.Now()
	return s.DB.Model(doc).Updates(map[string]interface{}{
		"is_archived":    true,
		"archived_at":    now,
		"archived_by_id": actorID,
	}).Error
}

// ArchiveDocuments archives several documents and returns the count
func (s *DocumentService) ArchiveDocuments(actorID uint, ids []uint) (int, error) {
	archived := 0
	for _, id := range ids {
		err := s.ArchiveDocument(actorID, id)
		if err == nil {
			archived++
			continue
		}
		if errors.Is(err, ErrDocumentNotFound) || errors.Is(err, ErrDocumentArchived) {
			continue
		}
		return archived, err
	}
	return archived, nil
}

// RestoreDocument brings an archived document back
func (s *DocumentService) RestoreDocument(actorID, id uint) error {
	doc, err := s.GetDocumentByID(id)
	if err != nil {
		return err
	}
	if !doc.IsArchived {
		return nil
	}

	return s.DB.Model(doc).Updates(map[string]interface{}{
		"is_archived":    false,
		"archived_at":    nil,
		"archived_by_id": nil,
		"updated_by_id":  actorID,
	}).Error
}

// GetDocumentFile returns the absolute PDF path for an issued document,
// regenerating the file when it is missing from disk
func (s *DocumentService) GetDocumentFile(id uint) (string, error) {
	doc, err := s.GetDocumentByID(id)
	if err != nil {
		return "", err
	}
	if !doc.IsIssued() {
		return "", ErrDocumentNotIssued
	}

	fullPath := filepath.Join(s.Config.UploadDir, doc.FilePath)
	if doc.FilePath == "" || fileMissing(fullPath) {
		filePath, err := s.PDF.GenerateDocumentPDF(doc)
		if err != nil {
			return "", err
		}
		if err := s.DB.Model(doc).Update("file_path", filePath).Error; err != nil {
			return "", err
		}
		fullPath = filepath.Join(s.Config.UploadDir, filePath)
	}
	return fullPath, nil
}

func fileMissing(path string) bool {
	_, err := os.Stat(path)
	return err != nil
}

// PurgeExpired archives issued documents past their validity window and
// deletes archived ones past the grace period, including their PDF files
func (s *DocumentService) PurgeExpired(validityMonths, graceDays int, dryRun bool) (*PurgeResult, error) {
	result := &PurgeResult{DryRun: dryRun}
	now := time.Now()

	// Issued documents are valid for validityMonths after the issue date
	archiveCutoff := utils.AddMonths(now, -validityMonths)

	var toArchive []models.Document
	err := s.DB.Where("status = ? AND is_archived = ? AND issue_date IS NOT NULL AND issue_date < ?",
		models.StatusIssued, false, archiveCutoff).Find(&toArchive).Error
	if err != nil {
		return nil, err
	}

	if !dryRun {
		for _, doc := range toArchive {
			if err := s.DB.Model(&doc).Updates(map[string]interface{}{
				"is_archived": true,
				"archived_at": now,
			}).Error; err != nil {
				return nil, err
			}
		}
		if len(toArchive) > 0 {
			config.Info("Auto-archived expired documents: %d", len(toArchive))
		}
	}
	result.Archived = len(toArchive)

	// Archived issued documents past expiry plus the grace period are removed
	deleteCutoff := utils.AddMonths(now.AddDate(0, 0, -graceDays), -validityMonths)

	var toDelete []models.Document
	err = s.DB.Where("status = ? AND is_archived = ? AND issue_date IS NOT NULL AND issue_date < ?",
		models.StatusIssued, true, deleteCutoff).Find(&toDelete).Error
	if err != nil {
		return nil, err
	}

	if !dryRun {
		for _, doc := range toDelete {
			if doc.FilePath != "" {
				fullPath := filepath.Join(s.Config.UploadDir, doc.FilePath)
				if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
					config.Warning("failed to remove PDF for purged document %d: %v", doc.ID, err)
				}
			}
			if err := s.DB.Delete(&doc).Error; err != nil {
				return nil, err
			}
		}
		if len(toDelete) > 0 {
			config.Info("Auto-deleted expired documents: %d", len(toDelete))
		}
	}
	result.Deleted = len(toDelete)

	return result, nil
}

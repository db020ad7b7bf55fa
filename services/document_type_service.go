package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/config"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
)

// Document type service errors
var (
	ErrDocumentTypeNotFound = errors.New("document type not found")
	ErrDocumentTypeExists   = errors.New("document type already exists")
	ErrDocumentTypeInUse    = errors.New("document type is still referenced by documents")
	ErrInvalidTemplate      = errors.New("unknown template identifier")
)

// InterfaceDocumentTypeService defines the document type service interface
type InterfaceDocumentTypeService interface {
	GetAllDocumentTypes() ([]models.DocumentType, error)
	GetDocumentTypeByID(id uint) (*models.DocumentType, error)
	CreateDocumentType(docType *models.DocumentType) error
	UpdateDocumentType(id uint, updates map[string]interface{}) (*models.DocumentType, error)
	DeleteDocumentType(id uint) error
	SeedDefaults() error
}

// DocumentTypeService manages the certificate catalogue
type DocumentTypeService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewDocumentTypeService creates a new document type service
func NewDocumentTypeService(db *gorm.DB, cfg *config.Config) InterfaceDocumentTypeService {
	return &DocumentTypeService{
		DB:     db,
		Config: cfg,
	}
}

// GetAllDocumentTypes lists all types ordered by name
func (s *DocumentTypeService) GetAllDocumentTypes() ([]models.DocumentType, error) {
	var types []models.DocumentType
	if err := s.DB.Order("name ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// GetDocumentTypeByID loads one type
func (s *DocumentTypeService) GetDocumentTypeByID(id uint) (*models.DocumentType, error) {
	var docType models.DocumentType
	if err := s.DB.First(&docType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentTypeNotFound
		}
		return nil, err
	}
	return &docType, nil
}

// CreateDocumentType adds a new certificate kind
func (s *DocumentTypeService) CreateDocumentType(docType *models.DocumentType) error {
	docType.Name = strings.TrimSpace(docType.Name)
	if docType.TemplatePath == "" {
		docType.TemplatePath = models.TemplateOther
	}
	if !models.ValidTemplate(docType.TemplatePath) {
		return ErrInvalidTemplate
	}

	var count int64
	err := s.DB.Model(&models.DocumentType{}).
		Where("LOWER(name) = ?", strings.ToLower(docType.Name)).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDocumentTypeExists
	}

	return s.DB.Create(docType).Error
}

// UpdateDocumentType edits a certificate kind
func (s *DocumentTypeService) UpdateDocumentType(id uint, updates map[string]interface{}) (*models.DocumentType, error) {
	docType, err := s.GetDocumentTypeByID(id)
	if err != nil {
		return nil, err
	}

	if name, ok := updates["name"].(string); ok {
		name = strings.TrimSpace(name)
		var count int64
		err := s.DB.Model(&models.DocumentType{}).
			Where("LOWER(name) = ? AND id != ?", strings.ToLower(name), id).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrDocumentTypeExists
		}
		docType.Name = name
	}
	if description, ok := updates["description"].(string); ok {
		docType.Description = description
	}
	if template, ok := updates["template_path"].(string); ok {
		if !models.ValidTemplate(template) {
			return nil, ErrInvalidTemplate
		}
		docType.TemplatePath = template
	}
	if requiresPhoto, ok := updates["requires_photo"].(bool); ok {
		docType.RequiresPhoto = requiresPhoto
	}

	if err := s.DB.Save(docType).Error; err != nil {
		return nil, err
	}
	return docType, nil
}

// DeleteDocumentType removes a type unless documents still reference it
func (s *DocumentTypeService) DeleteDocumentType(id uint) error {
	docType, err := s.GetDocumentTypeByID(id)
	if err != nil {
		return err
	}

	var count int64
	if err := s.DB.Model(&models.Document{}).
		Where("document_type_id = ?", id).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDocumentTypeInUse
	}

	return s.DB.Delete(docType).Error
}

// SeedDefaults inserts the default catalogue when the table is empty
func (s *DocumentTypeService) SeedDefaults() error {
	var count int64
	if err := s.DB.Model(&models.DocumentType{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := models.DefaultDocumentTypes()
	if err := s.DB.Create(&defaults).Error; err != nil {
		return err
	}
	config.Info("seeded %d default document types", len(defaults))
	return nil
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
)

func newDocumentTypeService(t *testing.T) *DocumentTypeService {
	t.Helper()
	return NewDocumentTypeService(setupTestDB(t), testConfig(t)).(*DocumentTypeService)
}

func TestSeedDefaults(t *testing.T) {
	svc := newDocumentTypeService(t)

	require.NoError(t, svc.SeedDefaults())

	types, err := svc.GetAllDocumentTypes()
	require.NoError(t, err)
	assert.Len(t, types, 7)

	byName := map[string]models.DocumentType{}
	for _, dt := range types {
		byName[dt.Name] = dt
	}
	require.Contains(t, byName, "Barangay ID")
	assert.True(t, byName["Barangay ID"].RequiresPhoto)
	require.Contains(t, byName, "Certificate of Residency")
	assert.False(t, byName["Certificate of Residency"].RequiresPhoto)

	// Seeding is idempotent
	require.NoError(t, svc.SeedDefaults())
	types, err = svc.GetAllDocumentTypes()
	require.NoError(t, err)
	assert.Len(t, types, 7)
}

func TestCreateDocumentType(t *testing.T) {
	svc := newDocumentTypeService(t)

	docType := &models.DocumentType{Name: "Solo Parent Certificate"}
	require.NoError(t, svc.CreateDocumentType(docType))
	assert.Equal(t, models.TemplateOther, docType.TemplatePath)

	// Names are unique, case insensitive
	dup := &models.DocumentType{Name: "solo parent certificate"}
	assert.ErrorIs(t, svc.CreateDocumentType(dup), ErrDocumentTypeExists)

	bad := &models.DocumentType{Name: "Custom", TemplatePath: "no_such_template"}
	assert.ErrorIs(t, svc.CreateDocumentType(bad), ErrInvalidTemplate)
}

func TestUpdateDocumentType(t *testing.T) {
	svc := newDocumentTypeService(t)

	docType := &models.DocumentType{Name: "Solo Parent Certificate"}
	require.NoError(t, svc.CreateDocumentType(docType))
	other := &models.DocumentType{Name: "First Time Job Seeker"}
	require.NoError(t, svc.CreateDocumentType(other))

	updated, err := svc.UpdateDocumentType(docType.ID, map[string]interface{}{
		"description":    "For solo parent benefits",
		"requires_photo": true,
	})
	require.NoError(t, err)
	assert.Equal(t, "For solo parent benefits", updated.Description)
	assert.True(t, updated.RequiresPhoto)

	// Renaming onto an existing name is refused
	_, err = svc.UpdateDocumentType(docType.ID, map[string]interface{}{"name": "FIRST TIME JOB SEEKER"})
	assert.ErrorIs(t, err, ErrDocumentTypeExists)

	_, err = svc.UpdateDocumentType(9999, map[string]interface{}{"description": "x"})
	assert.ErrorIs(t, err, ErrDocumentTypeNotFound)
}

func TestDeleteDocumentType(t *testing.T) {
	svc := newDocumentTypeService(t)

	docType := &models.DocumentType{Name: "Solo Parent Certificate"}
	require.NoError(t, svc.CreateDocumentType(docType))

	// Types referenced by documents cannot be removed
	resident := models.Resident{FirstName: "Maria", LastName: "Santos", Gender: models.GenderFemale}
	require.NoError(t, svc.DB.Create(&resident).Error)
	doc := models.Document{ResidentID: resident.ID, DocumentTypeID: docType.ID, Status: models.StatusDraft}
	require.NoError(t, svc.DB.Create(&doc).Error)

	assert.ErrorIs(t, svc.DeleteDocumentType(docType.ID), ErrDocumentTypeInUse)

	require.NoError(t, svc.DB.Delete(&doc).Error)
	require.NoError(t, svc.DeleteDocumentType(docType.ID))

	_, err := svc.GetDocumentTypeByID(docType.ID)
	assert.ErrorIs(t, err, ErrDocumentTypeNotFound)
}

package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/config"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
)

type documentFixture struct {
	db       *gorm.DB
	cfg      *config.Config
	svc      *DocumentService
	resident *models.Resident
	docType  *models.DocumentType
}

func newDocumentFixture(t *testing.T) *documentFixture {
	t.Helper()

	db := setupTestDB(t)
	cfg := testConfig(t)
	pdf := NewPDFService(db, cfg)
	svc := NewDocumentService(db, cfg, pdf).(*DocumentService)

	birth := time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC)
	resident := &models.Resident{
		FirstName: "Maria",
		LastName:  "Santos",
		Gender:    models.GenderFemale,
		BirthDate: &birth,
		Address:   "123 Sampaguita St",
	}
	require.NoError(t, db.Create(resident).Error)

	docType := &models.DocumentType{
		Name:         "Barangay Clearance",
		TemplatePath: models.TemplateBarangayClearance,
	}
	require.NoError(t, db.Create(docType).Error)

	return &documentFixture{db: db, cfg: cfg, svc: svc, resident: resident, docType: docType}
}

func (f *documentFixture) draft(t *testing.T) *models.Document {
	t.Helper()

	doc, err := f.svc.CreateDocument(1, DocumentInput{
		ResidentID:     f.resident.ID,
		DocumentTypeID: f.docType.ID,
		Details:        "For employment purposes",
	})
	require.NoError(t, err)
	return doc
}

func TestCreateDocument(t *testing.T) {
	f := newDocumentFixture(t)

	doc := f.draft(t)
	assert.Equal(t, models.StatusDraft, doc.Status)
	assert.Equal(t, "For employment purposes", doc.Details)

	// Unknown resident or type
	_, err := f.svc.CreateDocument(1, DocumentInput{ResidentID: 9999, DocumentTypeID: f.docType.ID})
	assert.ErrorIs(t, err, ErrResidentNotFound)
	_, err = f.svc.CreateDocument(1, DocumentInput{ResidentID: f.resident.ID, DocumentTypeID: 9999})
	assert.ErrorIs(t, err, ErrDocumentTypeNotFound)

	// Archived residents cannot receive documents
	require.NoError(t, f.db.Model(f.resident).Update("is_archived", true).Error)
	_, err = f.svc.CreateDocument(1, DocumentInput{ResidentID: f.resident.ID, DocumentTypeID: f.docType.ID})
	assert.ErrorIs(t, err, ErrResidentArchived)
}

func TestCreateDocumentDateValidation(t *testing.T) {
	f := newDocumentFixture(t)

	future := time.Now().Add(48 * time.Hour)
	_, err := f.svc.CreateDocument(1, DocumentInput{
		ResidentID:     f.resident.ID,
		DocumentTypeID: f.docType.ID,
		IssueDate:      &future,
	})
	assert.ErrorIs(t, err, ErrIssueDateInFuture)

	beforeBirth := time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = f.svc.CreateDocument(1, DocumentInput{
		ResidentID:     f.resident.ID,
		DocumentTypeID: f.docType.ID,
		IssueDate:      &beforeBirth,
	})
	assert.ErrorIs(t, err, ErrIssueBeforeBirth)
}

func TestIssueDocument(t *testing.T) {
	f := newDocumentFixture(t)
	doc := f.draft(t)

	issued, err := f.svc.IssueDocument(2, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusIssued, issued.Status)
	require.NotNil(t, issued.IssuedByID)
	assert.Equal(t, uint(2), *issued.IssuedByID)
	require.NotNil(t, issued.IssueDate)
	assert.NotEmpty(t, issued.FilePath)

	// The PDF exists on disk
	_, err = os.Stat(filepath.Join(f.cfg.UploadDir, issued.FilePath))
	assert.NoError(t, err)

	// Issuing twice is refused
	_, err = f.svc.IssueDocument(2, doc.ID)
	assert.ErrorIs(t, err, ErrDocumentStatus)
}

func TestIssueDocumentRequiresPhoto(t *testing.T) {
	f := newDocumentFixture(t)

	idType := &models.DocumentType{
		Name:          "Barangay ID",
		TemplatePath:  models.TemplateBarangayID,
		RequiresPhoto: true,
	}
	require.NoError(t, f.db.Create(idType).Error)

	doc, err := f.svc.CreateDocument(1, DocumentInput{
		ResidentID:     f.resident.ID,
		DocumentTypeID: idType.ID,
	})
	require.NoError(t, err)

	_, err = f.svc.IssueDocument(1, doc.ID)
	assert.ErrorIs(t, err, ErrPhotoRequired)
}

func TestUpdateDocument(t *testing.T) {
	f := newDocumentFixture(t)
	doc := f.draft(t)

	// Approved documents drop back to draft when edited
	approver := uint(3)
	now := time.Now()
	require.NoError(t, f.db.Model(doc).Updates(map[string]interface{}{
		"status":         models.StatusApproved,
		"approved_by_id": approver,
		"approved_at":    now,
	}).Error)

	updated, err := f.svc.UpdateDocument(1, doc.ID, DocumentInput{Details: "Updated purpose"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, updated.Status)
	assert.Nil(t, updated.ApprovedByID)
	assert.Nil(t, updated.ApprovedAt)
	assert.Equal(t, "Updated purpose", updated.Details)

	// Issued documents are immutable
	_, err = f.svc.IssueDocument(1, doc.ID)
	require.NoError(t, err)
	_, err = f.svc.UpdateDocument(1, doc.ID, DocumentInput{Details: "Too late"})
	assert.ErrorIs(t, err, ErrDocumentImmutable)
}

func TestReviseDocument(t *testing.T) {
	f := newDocumentFixture(t)
	doc := f.draft(t)

	// Drafts cannot be revised
	_, err := f.svc.ReviseDocument(1, doc.ID)
	assert.ErrorIs(t, err, ErrDocumentStatus)

	issued, err := f.svc.IssueDocument(1, doc.ID)
	require.NoError(t, err)

	draft, err := f.svc.ReviseDocument(4, issued.ID)
	require.NoError(t, err)
	assert.NotEqual(t, issued.ID, draft.ID)
	assert.Equal(t, models.StatusDraft, draft.Status)
	assert.Equal(t, issued.Details, draft.Details)

	// The original stays issued
	original, err := f.svc.GetDocumentByID(issued.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusIssued, original.Status)
}

func TestArchiveAndRestoreDocument(t *testing.T) {
	f := newDocumentFixture(t)
	doc := f.draft(t)

	require.NoError(t, f.svc.ArchiveDocument(1, doc.ID))
	assert.ErrorIs(t, f.svc.ArchiveDocument(1, doc.ID), ErrDocumentArchived)

	// Archived documents cannot be issued
	_, err := f.svc.IssueDocument(1, doc.ID)
	assert.ErrorIs(t, err, ErrDocumentArchived)

	require.NoError(t, f.svc.RestoreDocument(1, doc.ID))
	restored, err := f.svc.GetDocumentByID(doc.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsArchived)
}

func TestArchiveDocumentsBulk(t *testing.T) {
	f := newDocumentFixture(t)

	a := f.draft(t)
	b := f.draft(t)
	require.NoError(t, f.svc.ArchiveDocument(1, b.ID))

	archived, err := f.svc.ArchiveDocuments(1, []uint{a.ID, b.ID, 9999})
	require.NoError(t, err)
	assert.Equal(t, 1, archived)
}

func TestGetDocumentFile(t *testing.T) {
	f := newDocumentFixture(t)
	doc := f.draft(t)

	// Drafts cannot be downloaded
	_, err := f.svc.GetDocumentFile(doc.ID)
	assert.ErrorIs(t, err, ErrDocumentNotIssued)

	issued, err := f.svc.IssueDocument(1, doc.ID)
	require.NoError(t, err)

	path, err := f.svc.GetDocumentFile(issued.ID)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)

	// A deleted file is regenerated on demand
	require.NoError(t, os.Remove(path))
	path, err = f.svc.GetDocumentFile(issued.ID)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestPurgeExpired(t *testing.T) {
	f := newDocumentFixture(t)

	// An issued document just past the validity window, still inside the
	// grace period
	oldIssue := time.Now().AddDate(0, -6, -5)
	expired := f.draft(t)
	require.NoError(t, f.db.Model(expired).Updates(map[string]interface{}{
		"status":     models.StatusIssued,
		"issue_date": oldIssue,
	}).Error)

	// A recent issued document is untouched
	recentIssue := time.Now().AddDate(0, -1, 0)
	fresh := f.draft(t)
	require.NoError(t, f.db.Model(fresh).Updates(map[string]interface{}{
		"status":     models.StatusIssued,
		"issue_date": recentIssue,
	}).Error)

	// An archived issued document past expiry plus grace is removed
	ancientIssue := time.Now().AddDate(0, -9, 0)
	ancient := f.draft(t)
	require.NoError(t, f.db.Model(ancient).Updates(map[string]interface{}{
		"status":      models.StatusIssued,
		"issue_date":  ancientIssue,
		"is_archived": true,
	}).Error)

	// Dry run reports without changing anything
	result, err := f.svc.PurgeExpired(6, 30, true)
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, 1, result.Archived)
	assert.Equal(t, 1, result.Deleted)

	var count int64
	f.db.Model(&models.Document{}).Count(&count)
	assert.Equal(t, int64(3), count)

	// The real pass archives and deletes
	result, err = f.svc.PurgeExpired(6, 30, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Archived)
	assert.Equal(t, 1, result.Deleted)

	archived, err := f.svc.GetDocumentByID(expired.ID)
	require.NoError(t, err)
	assert.True(t, archived.IsArchived)

	_, err = f.svc.GetDocumentByID(ancient.ID)
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	untouched, err := f.svc.GetDocumentByID(fresh.ID)
	require.NoError(t, err)
	assert.False(t, untouched.IsArchived)
}

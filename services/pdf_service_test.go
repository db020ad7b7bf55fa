package services

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/config"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
)

// writeTestPhoto stores a deliberately non-square JPEG under the upload dir
func writeTestPhoto(t *testing.T, cfg *config.Config) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 120, 60))
	for x := 0; x < 120; x++ {
		for y := 0; y < 60; y++ {
			img.Set(x, y, color.RGBA{R: 80, G: 140, B: 200, A: 255})
		}
	}

	dir := filepath.Join(cfg.UploadDir, "photos")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, imaging.Save(img, filepath.Join(dir, "capture.jpg")))
	return "photos/capture.jpg"
}

func newIDDocument(t *testing.T, svc *PDFService, photoPath string) *models.Document {
	t.Helper()

	birth := time.Date(1988, 2, 14, 0, 0, 0, 0, time.UTC)
	barangayID := "KNL-2026-00017"
	resident := &models.Resident{
		FirstName:  "Juan",
		LastName:   "Reyes",
		Gender:     models.GenderMale,
		BirthDate:  &birth,
		Address:    "45 Ilang-Ilang St",
		BarangayID: &barangayID,
		PhotoPath:  photoPath,
	}
	require.NoError(t, svc.DB.Create(resident).Error)

	docType := &models.DocumentType{
		Name:         "Barangay ID",
		TemplatePath: models.TemplateBarangayID,
	}
	require.NoError(t, svc.DB.Create(docType).Error)

	issued := time.Now()
	doc := &models.Document{
		ResidentID:     resident.ID,
		DocumentTypeID: docType.ID,
		Status:         models.StatusIssued,
		IssueDate:      &issued,
		Details:        "Replacement card",
	}
	require.NoError(t, svc.DB.Create(doc).Error)
	return doc
}

func TestGenerateBarangayIDWithPhoto(t *testing.T) {
	cfg := testConfig(t)
	svc := NewPDFService(setupTestDB(t), cfg).(*PDFService)
	photo := writeTestPhoto(t, cfg)

	doc := newIDDocument(t, svc, photo)

	rel, err := svc.GenerateDocumentPDF(doc)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(cfg.UploadDir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerateBarangayIDMissingPhoto(t *testing.T) {
	cfg := testConfig(t)
	svc := NewPDFService(setupTestDB(t), cfg).(*PDFService)

	// An unreadable photo is skipped, the card still renders
	doc := newIDDocument(t, svc, "photos/gone.jpg")

	rel, err := svc.GenerateDocumentPDF(doc)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(cfg.UploadDir, filepath.FromSlash(rel)))
	assert.NoError(t, err)
}

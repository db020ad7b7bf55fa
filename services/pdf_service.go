package services

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/config"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/utils"
)

// ErrPDFGeneration wraps layout failures
var ErrPDFGeneration = errors.New("failed to generate the document PDF")

var unsafePathChars = regexp.MustCompile(`[^a-z0-9_]+`)

// idPhotoPixels is the square crop size for ID photos, 33 mm at 300 dpi
const idPhotoPixels = 390

// InterfacePDFService defines the PDF generation interface
type InterfacePDFService interface {
	GenerateDocumentPDF(doc *models.Document) (string, error)
}

// PDFService renders certificate PDFs per document type template
type PDFService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewPDFService creates a new PDF service
func NewPDFService(db *gorm.DB, cfg *config.Config) InterfacePDFService {
	return &PDFService{
		DB:     db,
		Config: cfg,
	}
}

// GenerateDocumentPDF renders the PDF for an issued document and returns
// the file path relative to the upload directory
func (s *PDFService) GenerateDocumentPDF(doc *models.Document) (string, error) {
	if doc.Resident == nil {
		var resident models.Resident
		if err := s.DB.First(&resident, doc.ResidentID).Error; err != nil {
			return "", err
		}
		doc.Resident = &resident
	}
	if doc.DocumentType == nil {
		var docType models.DocumentType
		if err := s.DB.First(&docType, doc.DocumentTypeID).Error; err != nil {
			return "", err
		}
		doc.DocumentType = &docType
	}

	folder := safeTypeFolder(doc.DocumentType.Name)
	dir := filepath.Join(s.Config.UploadDir, "documents", folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("%s_resident_%d_%d.pdf", folder, doc.ResidentID, time.Now().Unix())
	fullPath := filepath.Join(dir, fileName)

	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	switch doc.DocumentType.TemplatePath {
	case models.TemplateBarangayID:
		s.renderBarangayID(pdf, doc)
	case models.TemplateBarangayClearance, models.TemplateBusinessClearance,
		models.TemplateIndigency, models.TemplateGoodMoral:
		s.renderClearance(pdf, doc)
	case models.TemplateResidency:
		s.renderResidency(pdf, doc)
	default:
		s.renderGeneric(pdf, doc)
	}

	if err := pdf.OutputFileAndClose(fullPath); err != nil {
		config.Error("PDF output failed for document %d: %v", doc.ID, err)
		return "", ErrPDFGeneration
	}
	return filepath.ToSlash(filepath.Join("documents", folder, fileName)), nil
}

// safeTypeFolder lowercases a type name into a filesystem-safe folder
func safeTypeFolder(name string) string {
	folder := unsafePathChars.ReplaceAllString(strings.ToLower(name), "_")
	folder = strings.Trim(folder, "_")
	if folder == "" {
		folder = "document"
	}
	return folder
}

// drawHeader draws the shared national and system header
func (s *PDFService) drawHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Times", "", 11)
	pdf.CellFormat(0, 6, "REPUBLIC OF THE PHILIPPINES", "", 1, "C", false, 0, "")
	pdf.SetFont("Times", "B", 12)
	pdf.CellFormat(0, 6, "BARANGAY DOCUMENT MANAGEMENT SYSTEM", "", 1, "C", false, 0, "")
	pdf.SetFont("Times", "B", 15)
	pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")

	// Divider
	x, y := pdf.GetXY()
	pageWidth, _ := pdf.GetPageSize()
	pdf.Line(20, y, pageWidth-20, y)
	pdf.SetXY(x, y+6)
}

func (s *PDFService) issueDateString(doc *models.Document) string {
	if doc.IssueDate != nil {
		return utils.FormatLongDate(*doc.IssueDate)
	}
	return utils.FormatLongDate(time.Now())
}

// keyValueRow draws one labelled row of the ID card
func keyValueRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Times", "B", 11)
	pdf.CellFormat(45, 8, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Times", "", 11)
	pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
}

// renderBarangayID draws the ID card with the photo at the top right
func (s *PDFService) renderBarangayID(pdf *gofpdf.Fpdf, doc *models.Document) {
	s.drawHeader(pdf, doc.DocumentType.Name)

	resident := doc.Resident

	photoPath := doc.PhotoPath
	if photoPath == "" {
		photoPath = resident.PhotoPath
	}
	if photoPath != "" {
		full := filepath.Join(s.Config.UploadDir, photoPath)
		if img, err := utils.LoadImage(full); err == nil {
			// Center-crop to a square so portrait and landscape captures
			// both fill the 33 mm box without distortion
			square := utils.CropToFill(img, idPhotoPixels, idPhotoPixels)
			var buf bytes.Buffer
			if err := imaging.Encode(&buf, square, imaging.JPEG, imaging.JPEGQuality(90)); err == nil {
				opts := gofpdf.ImageOptions{ImageType: "JPEG"}
				name := fmt.Sprintf("resident_photo_%d", doc.ID)
				pdf.RegisterImageOptionsReader(name, opts, &buf)
				pageWidth, _ := pdf.GetPageSize()
				pdf.ImageOptions(name, pageWidth-20-33, 45, 33, 33, false, opts, 0, "")
			}
		} else {
			config.Warning("resident photo %s could not be read: %v", photoPath, err)
		}
	}

	pdf.SetY(50)
	barangayID := ""
	if resident.BarangayID != nil {
		barangayID = *resident.BarangayID
	}
	birthDate := ""
	if resident.BirthDate != nil {
		birthDate = utils.FormatLongDate(*resident.BirthDate)
	}

	keyValueRow(pdf, "Full Name:", resident.FullName())
	keyValueRow(pdf, "Barangay ID:", barangayID)
	keyValueRow(pdf, "Address:", resident.Address)
	keyValueRow(pdf, "Birth Date:", birthDate)
	keyValueRow(pdf, "Gender:", resident.Gender)

	pdf.Ln(8)
	pdf.SetFont("Times", "I", 10)
	pdf.CellFormat(0, 6, "Issued on "+s.issueDateString(doc), "", 1, "L", false, 0, "")
}

// renderClearance draws the letter-style clearance templates
func (s *PDFService) renderClearance(pdf *gofpdf.Fpdf, doc *models.Document) {
	s.drawHeader(pdf, doc.DocumentType.Name)

	resident := doc.Resident

	pdf.Ln(4)
	pdf.SetFont("Times", "B", 12)
	pdf.CellFormat(0, 8, "TO WHOM IT MAY CONCERN:", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Times", "", 12)
	body := fmt.Sprintf(
		"This is to certify that %s, a resident of %s, has been cleared by this office for the purpose stated below.",
		resident.FullName(), resident.Address)
	pdf.MultiCell(0, 7, body, "", "L", false)
	pdf.Ln(3)

	for _, line := range detailLines(doc.Details) {
		pdf.MultiCell(0, 6, "- "+line, "", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Times", "", 12)
	pdf.MultiCell(0, 7, "Issued on "+s.issueDateString(doc)+" at the Barangay Hall.", "", "L", false)

	drawSignatureBlock(pdf)
}

// renderResidency draws the long-form residency certificate
func (s *PDFService) renderResidency(pdf *gofpdf.Fpdf, doc *models.Document) {
	s.drawHeader(pdf, doc.DocumentType.Name)

	resident := doc.Resident
	issueDate := time.Now()
	if doc.IssueDate != nil {
		issueDate = *doc.IssueDate
	}
	validUntil := utils.AddMonths(issueDate, 6)

	pdf.Ln(4)
	pdf.SetFont("Times", "B", 12)
	pdf.CellFormat(0, 8, "TO WHOM IT MAY CONCERN:", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Times", "", 12)
	body := fmt.Sprintf(
		"This is to certify that %s, %s, is a bona fide resident of this barangay with residence at %s.",
		resident.FullName(), resident.Gender, resident.Address)
	pdf.MultiCell(0, 7, body, "", "J", false)
	pdf.Ln(2)

	for _, line := range detailLines(doc.Details) {
		pdf.MultiCell(0, 6, "- "+line, "", "L", false)
	}
	pdf.Ln(2)

	pdf.MultiCell(0, 7, fmt.Sprintf(
		"Issued at Barangay Krus Na Ligas on %s. This certificate is valid until %s.",
		utils.FormatLongDate(issueDate), utils.FormatLongDate(validUntil)), "", "J", false)

	pdf.Ln(2)
	pdf.SetFont("Times", "I", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Reference No. KNL-%d-%05d", issueDate.Year(), doc.ID), "", 1, "L", false, 0, "")

	drawSignatureBlock(pdf)
}

// renderGeneric draws the fallback certificate layout
func (s *PDFService) renderGeneric(pdf *gofpdf.Fpdf, doc *models.Document) {
	s.drawHeader(pdf, doc.DocumentType.Name)

	resident := doc.Resident

	pdf.Ln(4)
	pdf.SetFont("Times", "", 12)
	body := fmt.Sprintf("This certifies that %s of %s has been issued a %s by this office.",
		resident.FullName(), resident.Address, doc.DocumentType.Name)
	pdf.MultiCell(0, 7, body, "", "L", false)
	pdf.Ln(3)

	for _, line := range detailLines(doc.Details) {
		pdf.MultiCell(0, 6, "- "+line, "", "L", false)
	}

	pdf.Ln(4)
	pdf.MultiCell(0, 7, "Issued on "+s.issueDateString(doc)+".", "", "L", false)

	drawSignatureBlock(pdf)
}

// drawSignatureBlock draws the Prepared by / Approved by footer
func drawSignatureBlock(pdf *gofpdf.Fpdf) {
	_, pageHeight := pdf.GetPageSize()
	// Signatures sit in the reserved bottom area of the page
	pdf.SetY(pageHeight - 72)

	pdf.SetFont("Times", "", 11)
	pdf.CellFormat(85, 6, "Prepared by:", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Approved by:", "", 1, "L", false, 0, "")
	pdf.Ln(14)
	pdf.SetFont("Times", "B", 11)
	pdf.CellFormat(85, 6, "_______________________", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "_______________________", "", 1, "L", false, 0, "")
	pdf.SetFont("Times", "", 10)
	pdf.CellFormat(85, 6, "Barangay Secretary", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Barangay Captain", "", 1, "L", false, 0, "")
}

// detailLines splits the details field into printable bullet lines
func detailLines(details string) []string {
	var lines []string
	for _, raw := range strings.Split(details, "\n") {
		line := strings.TrimSpace(raw)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/config"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/utils"
)

// Export limits
const (
	pdfExportMaxRows    = 300
	exportDetailsMaxLen = 300
)

// TypeCount is one per-type aggregate row
type TypeCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// MonthCount is one month of issuance volume
type MonthCount struct {
	Month string `json:"month"` // "2006-01"
	Count int64  `json:"count"`
}

// DashboardStats aggregates the landing page numbers
type DashboardStats struct {
	ResidentCount   int64                   `json:"resident_count"`
	DocumentCount   int64                   `json:"document_count"`
	IssuedToday     int64                   `json:"issued_today"`
	GenderBreakdown map[string]int64        `json:"gender_breakdown"`
	DocumentsByType []TypeCount             `json:"documents_by_type"`
	MonthlyIssuance []MonthCount            `json:"monthly_issuance"`
	RecentLogs      []models.TransactionLog `json:"recent_logs"`
}

// ReportRow is one line of the issued-documents report
type ReportRow struct {
	IssueDate string `json:"issue_date"`
	Type      string `json:"type"`
	Resident  string `json:"resident"`
	Details   string `json:"details"`
}

// ReportSummary is the aggregate header of a report
type ReportSummary struct {
	From   string      `json:"from"`
	To     string      `json:"to"`
	Total  int64       `json:"total"`
	ByType []TypeCount `json:"by_type"`
}

// InterfaceReportService defines the reporting interface
type InterfaceReportService interface {
	GetDashboardStats() (*DashboardStats, error)
	GetReportSummary(from, to time.Time) (*ReportSummary, error)
	GetReportRows(from, to time.Time, page, pageSize int) ([]ReportRow, int64, error)
	ExportCSV(from, to time.Time) ([]byte, error)
	ExportXLSX(from, to time.Time) ([]byte, error)
	ExportPDF(from, to time.Time) ([]byte, error)
}

// ReportService computes dashboard and report aggregates
type ReportService struct {
	DB     *gorm.DB
	Config *config.Config
	Cache  InterfaceRedisService
}

// NewReportService creates a new report service
func NewReportService(db *gorm.DB, cfg *config.Config, cache InterfaceRedisService) InterfaceReportService {
	return &ReportService{
		DB:     db,
		Config: cfg,
		Cache:  cache,
	}
}

// GetDashboardStats computes the dashboard aggregates, serving from the
// cache when possible
func (s *ReportService) GetDashboardStats() (*DashboardStats, error) {
	if s.Cache != nil {
		var cached DashboardStats
		if err := s.Cache.GetDashboardStats(&cached); err == nil {
			return &cached, nil
		}
	}

	stats := &DashboardStats{
		GenderBreakdown: make(map[string]int64),
	}

	if err := s.DB.Model(&models.Resident{}).
		Where("is_archived = ?", false).
		Count(&stats.ResidentCount).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Document{}).
		Where("is_archived = ?", false).
		Count(&stats.DocumentCount).Error; err != nil {
		return nil, err
	}

	todayStart := time.Now().Truncate(24 * time.Hour)
	if err := s.DB.Model(&models.Document{}).
		Where("status = ? AND issued_at >= ?", models.StatusIssued, todayStart).
		Count(&stats.IssuedToday).Error; err != nil {
		return nil, err
	}

	var genderRows []struct {
		Gender string
		Count  int64
	}
	if err := s.DB.Model(&models.Resident{}).
		Select("gender, COUNT(*) as count").
		Where("is_archived = ?", false).
		Group("gender").
		Scan(&genderRows).Error; err != nil {
		return nil, err
	}
	for _, row := range genderRows {
		stats.GenderBreakdown[row.Gender] = row.Count
	}

	if err := s.DB.Model(&models.Document{}).
		Select("document_types.name as name, COUNT(*) as count").
		Joins("JOIN document_types ON document_types.id = documents.document_type_id").
		Where("documents.is_archived = ?", false).
		Group("document_types.name").
		Order("count DESC").
		Scan(&stats.DocumentsByType).Error; err != nil {
		return nil, err
	}

	monthly, err := s.monthlyIssuance()
	if err != nil {
		return nil, err
	}
	stats.MonthlyIssuance = monthly

	if err := s.DB.Preload("User").
		Order("timestamp DESC").Limit(8).
		Find(&stats.RecentLogs).Error; err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.CacheDashboardStats(stats, 2*time.Minute); err != nil {
			config.Warning("failed to cache dashboard stats: %v", err)
		}
	}
	return stats, nil
}

// monthlyIssuance buckets the last 12 months of issued documents.
// Bucketing happens in Go so the query stays portable across drivers.
func (s *ReportService) monthlyIssuance() ([]MonthCount, error) {
	start := utils.AddMonths(time.Now(), -11)
	start = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())

	var docs []models.Document
	err := s.DB.Select("issue_date").
		Where("status = ? AND issue_date IS NOT NULL AND issue_date >= ?", models.StatusIssued, start).
		Find(&docs).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, d := range docs {
		counts[d.IssueDate.Format("2006-01")]++
	}

	months := make([]MonthCount, 0, 12)
	for i := 0; i < 12; i++ {
		month := utils.AddMonths(start, i).Format("2006-01")
		months = append(months, MonthCount{Month: month, Count: counts[month]})
	}
	return months, nil
}

// reportQuery selects issued, non-archived documents in the window
func (s *ReportService) reportQuery(from, to time.Time) *gorm.DB {
	return s.DB.Model(&models.Document{}).
		Where("documents.status = ? AND documents.is_archived = ?", models.StatusIssued, false).
		Where("documents.issue_date >= ? AND documents.issue_date <= ?", from, to)
}

// GetReportSummary computes per-type counts in the window
func (s *ReportService) GetReportSummary(from, to time.Time) (*ReportSummary, error) {
	summary := &ReportSummary{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
	}

	if s.Cache != nil {
		window := summary.From + ":" + summary.To
		var cached ReportSummary
		if err := s.Cache.GetReportSummary(window, &cached); err == nil {
			return &cached, nil
		}
	}

	if err := s.reportQuery(from, to).Count(&summary.Total).Error; err != nil {
		return nil, err
	}
	if err := s.reportQuery(from, to).
		Select("document_types.name as name, COUNT(*) as count").
		Joins("JOIN document_types ON document_types.id = documents.document_type_id").
		Group("document_types.name").
		Order("count DESC").
		Scan(&summary.ByType).Error; err != nil {
		return nil, err
	}

	if s.Cache != nil {
		window := summary.From + ":" + summary.To
		if err := s.Cache.CacheReportSummary(window, summary, 2*time.Minute); err != nil {
			config.Warning("failed to cache report summary: %v", err)
		}
	}
	return summary, nil
}

// GetReportRows lists report rows in the window
func (s *ReportService) GetReportRows(from, to time.Time, page, pageSize int) ([]ReportRow, int64, error) {
	var total int64
	if err := s.reportQuery(from, to).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	docs, err := s.fetchReportDocuments(from, to, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return documentsToRows(docs), total, nil
}

func (s *ReportService) fetchReportDocuments(from, to time.Time, offset, limit int) ([]models.Document, error) {
	var docs []models.Document
	query := s.reportQuery(from, to).
		Preload("Resident").Preload("DocumentType").
		Order("documents.issue_date ASC")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func documentsToRows(docs []models.Document) []ReportRow {
	rows := make([]ReportRow, 0, len(docs))
	for _, d := range docs {
		row := ReportRow{Details: d.Details}
		if d.IssueDate != nil {
			row.IssueDate = d.IssueDate.Format("2006-01-02")
		}
		if d.DocumentType != nil {
			row.Type = d.DocumentType.Name
		}
		if d.Resident != nil {
			row.Resident = d.Resident.DisplayName()
		}
		rows = append(rows, row)
	}
	return rows
}

func truncateDetails(details string) string {
	if len(details) > exportDetailsMaxLen {
		return details[:exportDetailsMaxLen] + "..."
	}
	return details
}

var exportHeader = []string{"Issue Date", "Type", "Resident", "Details"}

// ExportCSV renders the report window as CSV
func (s *ReportService) ExportCSV(from, to time.Time) ([]byte, error) {
	docs, err := s.fetchReportDocuments(from, to, 0, 0)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, row := range documentsToRows(docs) {
		if err := w.Write([]string{row.IssueDate, row.Type, row.Resident, row.Details}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportXLSX renders the report window as a spreadsheet
func (s *ReportService) ExportXLSX(from, to time.Time) ([]byte, error) {
	docs, err := s.fetchReportDocuments(from, to, 0, 0)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Report"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}
	for i, row := range documentsToRows(docs) {
		values := []string{row.IssueDate, row.Type, row.Resident, row.Details}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportPDF renders the report window as a table PDF, capped at
// pdfExportMaxRows rows
func (s *ReportService) ExportPDF(from, to time.Time) ([]byte, error) {
	docs, err := s.fetchReportDocuments(from, to, 0, pdfExportMaxRows)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Issued Documents Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s to %s", from.Format("2006-01-02"), to.Format("2006-01-02")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := []float64{30, 55, 65, 100}
	pdf.SetFont("Helvetica", "B", 9)
	for i, title := range exportHeader {
		pdf.CellFormat(widths[i], 7, title, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range documentsToRows(docs) {
		values := []string{row.IssueDate, row.Type, row.Resident, truncateDetails(row.Details)}
		for i, value := range values {
			pdf.CellFormat(widths[i], 6, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, ErrPDFGeneration
	}
	return buf.Bytes(), nil
}

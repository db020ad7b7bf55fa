package services

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
)

// seedReportData inserts two residents and three issued documents, one
// of them outside the report window
func seedReportData(t *testing.T, db *gorm.DB) {
	t.Helper()

	maria := models.Resident{FirstName: "Maria", LastName: "Santos", Gender: models.GenderFemale}
	juan := models.Resident{FirstName: "Juan", LastName: "Reyes", Gender: models.GenderMale}
	require.NoError(t, db.Create(&maria).Error)
	require.NoError(t, db.Create(&juan).Error)

	clearance := models.DocumentType{Name: "Barangay Clearance", TemplatePath: models.TemplateBarangayClearance}
	residency := models.DocumentType{Name: "Certificate of Residency", TemplatePath: models.TemplateResidency}
	require.NoError(t, db.Create(&clearance).Error)
	require.NoError(t, db.Create(&residency).Error)

	now := time.Now()
	inWindow := []models.Document{
		{ResidentID: maria.ID, DocumentTypeID: clearance.ID, Status: models.StatusIssued,
			IssueDate: &now, IssuedAt: &now, Details: "For employment purposes"},
		{ResidentID: juan.ID, DocumentTypeID: clearance.ID, Status: models.StatusIssued,
			IssueDate: &now, IssuedAt: &now},
		{ResidentID: juan.ID, DocumentTypeID: residency.ID, Status: models.StatusIssued,
			IssueDate: &now, IssuedAt: &now},
	}
	for i := range inWindow {
		require.NoError(t, db.Create(&inWindow[i]).Error)
	}

	lastYear := now.AddDate(-1, 0, 0)
	outside := models.Document{ResidentID: maria.ID, DocumentTypeID: clearance.ID,
		Status: models.StatusIssued, IssueDate: &lastYear, IssuedAt: &lastYear}
	require.NoError(t, db.Create(&outside).Error)
}

func reportWindow() (time.Time, time.Time) {
	now := time.Now()
	return now.AddDate(0, 0, -7), now.Add(time.Hour)
}

func newReportService(t *testing.T) (*ReportService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	svc := NewReportService(db, testConfig(t), nil).(*ReportService)
	return svc, db
}

func TestGetDashboardStats(t *testing.T) {
	svc, db := newReportService(t)
	seedReportData(t, db)

	stats, err := svc.GetDashboardStats()
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.ResidentCount)
	assert.Equal(t, int64(4), stats.DocumentCount)
	assert.Equal(t, int64(3), stats.IssuedToday)
	assert.Equal(t, int64(1), stats.GenderBreakdown[models.GenderFemale])
	assert.Equal(t, int64(1), stats.GenderBreakdown[models.GenderMale])

	require.NotEmpty(t, stats.DocumentsByType)
	assert.Equal(t, "Barangay Clearance", stats.DocumentsByType[0].Name)
	assert.Equal(t, int64(3), stats.DocumentsByType[0].Count)

	// Twelve month buckets, current month carries the in-window documents
	require.Len(t, stats.MonthlyIssuance, 12)
	current := stats.MonthlyIssuance[11]
	assert.Equal(t, time.Now().Format("2006-01"), current.Month)
	assert.Equal(t, int64(3), current.Count)
}

func TestGetReportSummaryAndRows(t *testing.T) {
	svc, db := newReportService(t)
	seedReportData(t, db)
	from, to := reportWindow()

	summary, err := svc.GetReportSummary(from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Total)
	require.Len(t, summary.ByType, 2)
	assert.Equal(t, "Barangay Clearance", summary.ByType[0].Name)
	assert.Equal(t, int64(2), summary.ByType[0].Count)

	rows, total, err := svc.GetReportRows(from, to, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rows, 3)
	assert.Contains(t, []string{"Santos, Maria", "Reyes, Juan"}, rows[0].Resident)

	// Pagination caps the page
	rows, total, err = svc.GetReportRows(from, to, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, rows, 2)
}

func TestExportCSV(t *testing.T) {
	svc, db := newReportService(t)
	seedReportData(t, db)
	from, to := reportWindow()

	data, err := svc.ExportCSV(from, to)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Issue Date", "Type", "Resident", "Details"}, records[0])
	assert.Equal(t, time.Now().Format("2006-01-02"), records[1][0])
}

func TestExportXLSX(t *testing.T) {
	svc, db := newReportService(t)
	seedReportData(t, db)
	from, to := reportWindow()

	data, err := svc.ExportXLSX(from, to)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Report")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Issue Date", rows[0][0])
}

func TestExportPDF(t *testing.T) {
	svc, db := newReportService(t)
	seedReportData(t, db)
	from, to := reportWindow()

	data, err := svc.ExportPDF(from, to)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestTruncateDetails(t *testing.T) {
	short := "For employment purposes"
	assert.Equal(t, short, truncateDetails(short))

	long := strings.Repeat("x", 500)
	truncated := truncateDetails(long)
	assert.Len(t, truncated, exportDetailsMaxLen+3)
	assert.True(t, strings.HasSuffix(truncated, "..."))
}

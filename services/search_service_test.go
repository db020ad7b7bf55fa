package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
)

func newSearchService(t *testing.T) (*SearchService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	cfg := testConfig(t)
	residents := NewResidentService(db, cfg)
	documents := NewDocumentService(db, cfg, NewPDFService(db, cfg))
	svc := NewSearchService(db, cfg, residents, documents).(*SearchService)
	return svc, db
}

func seedSearchData(t *testing.T, db *gorm.DB) {
	t.Helper()

	ids := []string{"BRGY-2026-00001", "BRGY-2026-00002", "BRGY-2026-00003"}
	santos := models.Resident{FirstName: "Maria", LastName: "Santos", Gender: models.GenderFemale, BarangayID: &ids[0]}
	reyes := models.Resident{FirstName: "Juan", LastName: "Reyes", Gender: models.GenderMale, BarangayID: &ids[1]}
	archived := models.Resident{FirstName: "Pedro", LastName: "Santos", Gender: models.GenderMale, BarangayID: &ids[2], IsArchived: true}
	require.NoError(t, db.Create(&santos).Error)
	require.NoError(t, db.Create(&reyes).Error)
	require.NoError(t, db.Create(&archived).Error)

	clearance := models.DocumentType{Name: "Barangay Clearance", TemplatePath: models.TemplateBarangayClearance}
	require.NoError(t, db.Create(&clearance).Error)

	now := time.Now()
	docs := []models.Document{
		{ResidentID: santos.ID, DocumentTypeID: clearance.ID, Status: models.StatusIssued,
			IssueDate: &now, IssuedAt: &now, Details: "For employment"},
		{ResidentID: reyes.ID, DocumentTypeID: clearance.ID, Status: models.StatusDraft,
			IssueDate: &now, Details: "For scholarship"},
	}
	for i := range docs {
		require.NoError(t, db.Create(&docs[i]).Error)
	}
}

func TestSearchAllScope(t *testing.T) {
	svc, db := newSearchService(t)
	seedSearchData(t, db)

	result, err := svc.Search(SearchQuery{Q: "santos"}, 1, 20)
	require.NoError(t, err)

	assert.Equal(t, SearchScopeAll, result.Scope)
	assert.Equal(t, int64(1), result.ResidentTotal)
	require.Len(t, result.Residents, 1)
	assert.Equal(t, "Maria", result.Residents[0].FirstName)

	// Documents match via the resident's name
	assert.Equal(t, int64(1), result.DocumentTotal)
	require.Len(t, result.Documents, 1)
	assert.Equal(t, "For employment", result.Documents[0].Details)
}

func TestSearchResidentScope(t *testing.T) {
	svc, db := newSearchService(t)
	seedSearchData(t, db)

	result, err := svc.Search(SearchQuery{Q: "brgy-2026", Scope: SearchScopeResidents}, 1, 20)
	require.NoError(t, err)

	assert.Equal(t, SearchScopeResidents, result.Scope)
	assert.Equal(t, int64(2), result.ResidentTotal)
	assert.Empty(t, result.Documents)
	assert.Zero(t, result.DocumentTotal)

	// Archived toggle flips to the archived set
	result, err = svc.Search(SearchQuery{Q: "santos", Scope: SearchScopeResidents, Archived: true}, 1, 20)
	require.NoError(t, err)
	require.Len(t, result.Residents, 1)
	assert.Equal(t, "Pedro", result.Residents[0].FirstName)
}

func TestSearchDocumentScopeFilters(t *testing.T) {
	svc, db := newSearchService(t)
	seedSearchData(t, db)

	result, err := svc.Search(SearchQuery{Q: "clearance", Scope: SearchScopeDocuments}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.DocumentTotal)
	assert.Empty(t, result.Residents)

	// Draft status expands to every unissued status
	result, err = svc.Search(SearchQuery{Q: "clearance", Scope: SearchScopeDocuments, Status: models.StatusDraft}, 1, 20)
	require.NoError(t, err)
	require.Len(t, result.Documents, 1)
	assert.Equal(t, "For scholarship", result.Documents[0].Details)
}

func TestSearchEmptyQuery(t *testing.T) {
	svc, db := newSearchService(t)
	seedSearchData(t, db)

	result, err := svc.Search(SearchQuery{Q: ""}, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, result.Residents)
	assert.Empty(t, result.Documents)
	assert.Zero(t, result.ResidentTotal)
	assert.Zero(t, result.DocumentTotal)

	// Unknown scopes fall back to "all"
	result, err = svc.Search(SearchQuery{Q: "santos", Scope: "bogus"}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, SearchScopeAll, result.Scope)
}

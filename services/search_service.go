package services

import (
	"gorm.io/gorm"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/config"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
)

// Search scopes
const (
	SearchScopeAll       = "all"
	SearchScopeResidents = "residents"
	SearchScopeDocuments = "documents"
)

// SearchQuery narrows a cross-entity search
type SearchQuery struct {
	Q        string
	Scope    string // "all", "residents" or "documents"
	Status   string // document status, "draft" expands to draft-like
	TypeID   uint   // document type filter
	Archived bool
}

// SearchResult holds the matches per entity. With the "all" scope each
// list is capped at one page and the totals carry the full counts.
type SearchResult struct {
	Query         string            `json:"query"`
	Scope         string            `json:"scope"`
	Residents     []models.Resident `json:"residents"`
	ResidentTotal int64             `json:"resident_total"`
	Documents     []models.Document `json:"documents"`
	DocumentTotal int64             `json:"document_total"`
}

// InterfaceSearchService defines the global search interface
type InterfaceSearchService interface {
	Search(query SearchQuery, page, pageSize int) (*SearchResult, error)
}

// SearchService answers cross-entity searches over residents and
// documents by composing the two list queries
type SearchService struct {
	Config    *config.Config
	Residents InterfaceResidentService
	Documents InterfaceDocumentService
}

// NewSearchService creates a new search service
func NewSearchService(db *gorm.DB, cfg *config.Config, residents InterfaceResidentService, documents InterfaceDocumentService) InterfaceSearchService {
	return &SearchService{
		Config:    cfg,
		Residents: residents,
		Documents: documents,
	}
}

// Search runs the query in the requested scope. Scoped searches paginate
// their entity; the "all" scope returns the first page of both.
func (s *SearchService) Search(query SearchQuery, page, pageSize int) (*SearchResult, error) {
	scope := query.Scope
	switch scope {
	case SearchScopeResidents, SearchScopeDocuments:
	default:
		scope = SearchScopeAll
	}

	result := &SearchResult{
		Query:     query.Q,
		Scope:     scope,
		Residents: []models.Resident{},
		Documents: []models.Document{},
	}
	if query.Q == "" {
		return result, nil
	}

	if scope == SearchScopeResidents || scope == SearchScopeAll {
		residentPage := page
		if scope == SearchScopeAll {
			residentPage = 1
		}
		residents, total, err := s.Residents.GetAllResidents(ResidentFilter{
			Search:   query.Q,
			Archived: query.Archived,
		}, residentPage, pageSize)
		if err != nil {
			return nil, err
		}
		result.Residents = residents
		result.ResidentTotal = total
	}

	if scope == SearchScopeDocuments || scope == SearchScopeAll {
		documentPage := page
		if scope == SearchScopeAll {
			documentPage = 1
		}
		documents, total, err := s.Documents.GetAllDocuments(DocumentFilter{
			Search:   query.Q,
			TypeID:   query.TypeID,
			Status:   query.Status,
			Archived: query.Archived,
			SortBy:   "issue_date",
			SortDesc: true,
		}, documentPage, pageSize)
		if err != nil {
			return nil, err
		}
		result.Documents = documents
		result.DocumentTotal = total
	}

	return result, nil
}

package controllers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/internal/error/response"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/middleware"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services/container"
)

// InterfaceDocumentController defines the document controller interface
type InterfaceDocumentController interface {
	GetDocuments()
	GetDocument()
	CreateDocument()
	UpdateDocument()
	IssueDocument()
	ReviseDocument()
	ArchiveDocument()
	BulkArchiveDocuments()
	RestoreDocument()
	GetDocumentHistory()
	DownloadDocument()
	PurgeExpired()
}

// DocumentController handles document endpoints
type DocumentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDocumentController creates a new document controller
func NewDocumentController(ctx *gin.Context, container *container.ServiceContainer) *DocumentController {
	return &DocumentController{
		Ctx:       ctx,
		Container: container,
	}
}

// DocumentRequest carries document create/update fields
type DocumentRequest struct {
	ResidentID     uint   `json:"resident_id" example:"1"`
	DocumentTypeID uint   `json:"document_type_id" example:"2"`
	Details        string `json:"details" example:"For employment purposes"`
	IssueDate      string `json:"issue_date" example:"2026-08-01"`
	Photo          string `json:"photo" example:"data:image/png;base64,..."`
}

// HandleDocumentFunc returns a gin handler for the document controller
func HandleDocumentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDocumentController(ctx, container)

		switch method {
		case "getDocuments":
			controller.GetDocuments()
		case "getDocument":
			controller.GetDocument()
		case "createDocument":
			controller.CreateDocument()
		case "updateDocument":
			controller.UpdateDocument()
		case "issueDocument":
			controller.IssueDocument()
		case "reviseDocument":
			controller.ReviseDocument()
		case "archiveDocument":
			controller.ArchiveDocument()
		case "bulkArchiveDocuments":
			controller.BulkArchiveDocuments()
		case "restoreDocument":
			controller.RestoreDocument()
		case "getDocumentHistory":
			controller.GetDocumentHistory()
		case "downloadDocument":
			controller.DownloadDocument()
		case "purgeExpired":
			controller.PurgeExpired()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "invalid method",
				"data":    nil,
			})
		}
	}
}

func (c *DocumentController) documentService() services.InterfaceDocumentService {
	return c.Container.GetService("document").(services.InterfaceDocumentService)
}

func (c *DocumentController) auditService() services.InterfaceAuditService {
	return c.Container.GetService("audit").(services.InterfaceAuditService)
}

func (c *DocumentController) pathID() (uint, bool) {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.ParamError(c.Ctx, "invalid document id")
		return 0, false
	}
	return uint(id), true
}

func (req *DocumentRequest) toInput() (services.DocumentInput, error) {
	input := services.DocumentInput{
		ResidentID:     req.ResidentID,
		DocumentTypeID: req.DocumentTypeID,
		Details:        req.Details,
		PhotoDataURL:   req.Photo,
	}
	if req.IssueDate != "" {
		issueDate, err := time.Parse("2006-01-02", req.IssueDate)
		if err != nil {
			return input, err
		}
		input.IssueDate = &issueDate
	}
	return input, nil
}

// parseFilter reads the listing filters from the query string
func (c *DocumentController) parseFilter(archived bool) services.DocumentFilter {
	filter := services.DocumentFilter{
		Search:   c.Ctx.Query("q"),
		Status:   c.Ctx.Query("status"),
		Archived: archived,
		SortBy:   c.Ctx.DefaultQuery("sort_by", "created_at"),
		SortDesc: c.Ctx.DefaultQuery("sort", "desc") == "desc",
	}
	if typeID, err := strconv.ParseUint(c.Ctx.Query("type_id"), 10, 32); err == nil {
		filter.TypeID = uint(typeID)
	}
	if from, err := time.Parse("2006-01-02", c.Ctx.Query("date_from")); err == nil {
		filter.DateFrom = &from
	}
	if to, err := time.Parse("2006-01-02", c.Ctx.Query("date_to")); err == nil {
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &end
	}
	return filter
}

// 1. GetDocuments lists documents with filters
// @Summary      List documents
// @Tags         Documents
// @Produce      json
// @Param        page query int false "Page number, default 1"
// @Param        page_size query int false "Page size, default 20"
// @Param        q query string false "Search over resident name, type and details"
// @Param        type_id query int false "Document type filter"
// @Param        status query string false "Status filter, draft matches all unissued"
// @Param        date_from query string false "Issue date window start (YYYY-MM-DD)"
// @Param        date_to query string false "Issue date window end (YYYY-MM-DD)"
// @Param        sort_by query string false "issue_date or created_at"
// @Param        sort query string false "asc or desc"
// @Param        archived query bool false "List archived documents instead"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /documents [get]
// @Security     BearerAuth
func (c *DocumentController) GetDocuments() {
	page, pageSize := parsePagination(c.Ctx, c.Container.GetConfig().DefaultPageSize)
	archived, _ := strconv.ParseBool(c.Ctx.DefaultQuery("archived", "false"))

	documents, total, err := c.documentService().GetAllDocuments(c.parseFilter(archived), page, pageSize)
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{
		"pagination": models.NewPaginationResult(total, page, pageSize),
		"documents":  documents,
	})
}

// 2. GetDocument loads one document
// @Summary      Get a document
// @Tags         Documents
// @Produce      json
// @Param        id path int true "Document ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /documents/{id} [get]
// @Security     BearerAuth
func (c *DocumentController) GetDocument() {
	id, ok := c.pathID()
	if !ok {
		return
	}

	doc, err := c.documentService().GetDocumentByID(id)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, doc)
}

// 3. CreateDocument creates a draft for a resident
// @Summary      Create a document draft
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        request body DocumentRequest true "Document fields"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /documents [post]
// @Security     BearerAuth
func (c *DocumentController) CreateDocument() {
	var req DocumentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil || req.ResidentID == 0 || req.DocumentTypeID == 0 {
		response.ParamError(c.Ctx, "resident_id and document_type_id are required")
		return
	}

	input, err := req.toInput()
	if err != nil {
		response.ParamError(c.Ctx, "issue_date must be YYYY-MM-DD")
		return
	}

	userID := middleware.CurrentUserID(c.Ctx)
	doc, err := c.documentService().CreateDocument(userID, input)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	c.auditService().LogAction(actorID(c.Ctx), "create_document", "document", doc.ID,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(),
		map[string]interface{}{"resident_id": doc.ResidentID, "type_id": doc.DocumentTypeID})
	invalidateDashboard(c.Container)

	response.Success(c.Ctx, doc)
}

// 4. UpdateDocument edits an unissued document
// @Summary      Update a document
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        id path int true "Document ID"
// @Param        request body DocumentRequest true "Document fields"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  ErrorResponse
// @Router       /documents/{id} [put]
// @Security     BearerAuth
func (c *DocumentController) UpdateDocument() {
	id, ok := c.pathID()
	if !ok {
		return
	}

	var req DocumentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "invalid request body")
		return
	}

	input, err := req.toInput()
	if err != nil {
		response.ParamError(c.Ctx, "issue_date must be YYYY-MM-DD")
		return
	}

	userID := middleware.CurrentUserID(c.Ctx)
	doc, err := c.documentService().UpdateDocument(userID, id, input)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	c.auditService().LogAction(actorID(c.Ctx), "update_document", "document", doc.ID,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(), nil)
	invalidateDashboard(c.Container)

	response.Success(c.Ctx, doc)
}

// 5. IssueDocument finalizes a draft and generates the PDF
// @Summary      Issue a document
// @Tags         Documents
// @Produce      json
// @Param        id path int true "Document ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  ErrorResponse
// @Router       /documents/{id}/issue [post]
// @Security     BearerAuth
func (c *DocumentController) IssueDocument() {
	id, ok := c.pathID()
	if !ok {
		return
	}

	userID := middleware.CurrentUserID(c.Ctx)
	doc, err := c.documentService().IssueDocument(userID, id)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	c.auditService().LogAction(actorID(c.Ctx), "issue_document", "document", doc.ID,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(),
		map[string]interface{}{"file_path": doc.FilePath})
	invalidateDashboard(c.Container)

	response.Success(c.Ctx, doc)
}

// 6. ReviseDocument creates a fresh draft copy of an issued document
// @Summary      Revise an issued document
// @Tags         Documents
// @Produce      json
// @Param        id path int true "Document ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  ErrorResponse
// @Router       /documents/{id}/revise [post]
// @Security     BearerAuth
func (c *DocumentController) ReviseDocument() {
	id, ok := c.pathID()
	if !ok {
		return
	}

	userID := middleware.CurrentUserID(c.Ctx)
	draft, err := c.documentService().ReviseDocument(userID, id)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	c.auditService().LogAction(actorID(c.Ctx), "revise_document", "document", id,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(),
		map[string]interface{}{"draft_id": draft.ID})
	invalidateDashboard(c.Container)

	response.Success(c.Ctx, draft)
}

// 7. ArchiveDocument soft-deletes a document
// @Summary      Archive a document
// @Tags         Documents
// @Produce      json
// @Param        id path int true "Document ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /documents/{id} [delete]
// @Security     BearerAuth
func (c *DocumentController) ArchiveDocument() {
	id, ok := c.pathID()
	if !ok {
		return
	}

	userID := middleware.CurrentUserID(c.Ctx)
	if err := c.documentService().ArchiveDocument(userID, id); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	c.auditService().LogAction(actorID(c.Ctx), "archive_document", "document", id,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(), nil)
	invalidateDashboard(c.Container)

	response.Success(c.Ctx, gin.H{"message": "document archived"})
}

// 8. BulkArchiveDocuments archives several documents
// @Summary      Archive documents in bulk
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        request body BulkIDsRequest true "Document IDs"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /documents/bulk-archive [post]
// @Security     BearerAuth
func (c *DocumentController) BulkArchiveDocuments() {
	var req BulkIDsRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		response.ParamError(c.Ctx, "ids is required")
		return
	}

	userID := middleware.CurrentUserID(c.Ctx)
	archived, err := c.documentService().ArchiveDocuments(userID, req.IDs)
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}

	c.auditService().LogAction(actorID(c.Ctx), "bulk_archive_documents", "document", 0,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(),
		map[string]interface{}{"requested": len(req.IDs), "archived": archived})
	invalidateDashboard(c.Container)

	response.Success(c.Ctx, gin.H{"archived": archived})
}

// 9. RestoreDocument brings an archived document back
// @Summary      Restore a document
// @Tags         Documents
// @Produce      json
// @Param        id path int true "Document ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /documents/{id}/restore [post]
// @Security     BearerAuth
func (c *DocumentController) RestoreDocument() {
	id, ok := c.pathID()
	if !ok {
		return
	}

	userID := middleware.CurrentUserID(c.Ctx)
	if err := c.documentService().RestoreDocument(userID, id); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	c.auditService().LogAction(actorID(c.Ctx), "restore_document", "document", id,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(), nil)
	invalidateDashboard(c.Container)

	response.Success(c.Ctx, gin.H{"message": "document restored"})
}

// 10. GetDocumentHistory lists the audit rows for a document
// @Summary      Get a document's history
// @Tags         Documents
// @Produce      json
// @Param        id path int true "Document ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /documents/{id}/history [get]
// @Security     BearerAuth
func (c *DocumentController) GetDocumentHistory() {
	id, ok := c.pathID()
	if !ok {
		return
	}

	page, pageSize := parsePagination(c.Ctx, c.Container.GetConfig().DefaultPageSize)
	logs, total, err := c.auditService().GetEntityHistory("document", id, page, pageSize)
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{
		"pagination": models.NewPaginationResult(total, page, pageSize),
		"history":    logs,
	})
}

// 11. DownloadDocument serves the PDF of an issued document
// @Summary      Download a document PDF
// @Tags         Documents
// @Produce      application/pdf
// @Param        id path int true "Document ID"
// @Success      200  {file}  binary
// @Failure      409  {object}  ErrorResponse
// @Router       /documents/{id}/download [get]
// @Security     BearerAuth
func (c *DocumentController) DownloadDocument() {
	id, ok := c.pathID()
	if !ok {
		return
	}

	path, err := c.documentService().GetDocumentFile(id)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	c.auditService().LogAction(actorID(c.Ctx), "download_document", "document", id,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(), nil)

	c.Ctx.FileAttachment(path, filepath.Base(path))
}

// 12. PurgeExpired runs the expired document sweep on demand (admin)
// @Summary      Purge expired documents
// @Tags         Documents
// @Produce      json
// @Param        dry_run query bool false "Report what would be purged without changing anything"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /documents/purge [post]
// @Security     BearerAuth
func (c *DocumentController) PurgeExpired() {
	dryRun, _ := strconv.ParseBool(c.Ctx.DefaultQuery("dry_run", "false"))
	cfg := c.Container.GetConfig()

	result, err := c.documentService().PurgeExpired(cfg.PurgeValidityMonths, cfg.PurgeGraceDays, dryRun)
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}

	if !dryRun {
		c.auditService().LogAction(actorID(c.Ctx), "purge_documents", "document", 0,
			c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(),
			map[string]interface{}{"archived": result.Archived, "deleted": result.Deleted})
		invalidateDashboard(c.Container)
	}

	response.Success(c.Ctx, result)
}

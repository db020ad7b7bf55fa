package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/internal/error/response"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/middleware"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services/container"
)

// InterfaceResidentController defines the resident controller interface
type InterfaceResidentController interface {
	GetResidents()
	GetResident()
	GetResidentDocuments()
	CreateResident()
	UpdateResident()
	ArchiveResident()
	BulkArchiveResidents()
	RestoreResident()
}

// ResidentController handles resident endpoints
type ResidentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewResidentController creates a new resident controller
func NewResidentController(ctx *gin.Context, container *container.ServiceContainer) *ResidentController {
	return &ResidentController{
		Ctx:       ctx,
		Container: container,
	}
}

// ResidentRequest carries resident create/update fields
type ResidentRequest struct {
	BarangayID    string `json:"barangay_id" example:"BRGY-2026-00042"`
	FirstName     string `json:"first_name" binding:"required" example:"Juan"`
	MiddleName    string `json:"middle_name" example:"Reyes"`
	LastName      string `json:"last_name" binding:"required" example:"Dela Cruz"`
	Gender        string `json:"gender" binding:"required" example:"Male"`
	BirthDate     string `json:"birth_date" example:"1990-05-14"`
	MaritalStatus string `json:"marital_status" example:"Single"`
	Address       string `json:"address" example:"123 Sampaguita St."`
	Photo         string `json:"photo" example:"data:image/png;base64,..."`
}

// BulkIDsRequest carries IDs for bulk operations
type BulkIDsRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// HandleResidentFunc returns a gin handler for the resident controller
func HandleResidentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewResidentController(ctx, container)

		switch method {
		case "getResidents":
			controller.GetResidents()
		case "getResident":
			controller.GetResident()
		case "getResidentDocuments":
			controller.GetResidentDocuments()
		case "createResident":
			controller.CreateResident()
		case "updateResident":
			controller.UpdateResident()
		case "archiveResident":
			controller.ArchiveResident()
		case "bulkArchiveResidents":
			controller.BulkArchiveResidents()
		case "restoreResident":
			controller.RestoreResident()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "invalid method",
				"data":    nil,
			})
		}
	}
}

func (c *ResidentController) residentService() services.InterfaceResidentService {
	return c.Container.GetService("resident").(services.InterfaceResidentService)
}

func (c *ResidentController) auditService() services.InterfaceAuditService {
	return c.Container.GetService("audit").(services.InterfaceAuditService)
}

func (c *ResidentController) pathID() (uint, bool) {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.ParamError(c.Ctx, "invalid resident id")
		return 0, false
	}
	return uint(id), true
}

func (req *ResidentRequest) toInput() (services.ResidentInput, error) {
	input := services.ResidentInput{
		BarangayID:    req.BarangayID,
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		Gender:        req.Gender,
		MaritalStatus: req.MaritalStatus,
		Address:       req.Address,
		PhotoDataURL:  req.Photo,
	}
	if req.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return input, err
		}
		input.BirthDate = &birthDate
	}
	return input, nil
}

// 1. GetResidents lists residents with search and pagination
// @Summary      List residents
// @Tags         Residents
// @Produce      json
// @Param        page query int false "Page number, default 1"
// @Param        page_size query int false "Page size, default 20"
// @Param        q query string false "Search over names, barangay ID and address"
// @Param        archived query bool false "List archived residents instead"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /residents [get]
// @Security     BearerAuth
func (c *ResidentController) GetResidents() {
	page, pageSize := parsePagination(c.Ctx, c.Container.GetConfig().DefaultPageSize)
	archived, _ := strconv.ParseBool(c.Ctx.DefaultQuery("archived", "false"))

	filter := services.ResidentFilter{
		Search:   c.Ctx.Query("q"),
		Archived: archived,
	}

	residents, total, err := c.residentService().GetAllResidents(filter, page, pageSize)
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{
		"pagination": models.NewPaginationResult(total, page, pageSize),
		"residents":  residents,
	})
}

// 2. GetResident loads one resident
// @Summary      Get a resident
// @Tags         Residents
// @Produce      json
// @Param        id path int true "Resident ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /residents/{id} [get]
// @Security     BearerAuth
func (c *ResidentController) GetResident() {
	id, ok := c.pathID()
	if !ok {
		return
	}

	resident, err := c.residentService().GetResidentByID(id)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, resident)
}

// 3. GetResidentDocuments lists a resident's documents
// @Summary      List a resident's documents
// @Tags         Residents
// @Produce      json
// @Param        id path int true "Resident ID"
// @Param        status query string false "Status filter, draft matches all unissued"
// @Param        archived query bool false "List archived documents instead"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /residents/{id}/documents [get]
// @Security     BearerAuth
func (c *ResidentController) GetResidentDocuments() {
	id, ok := c.pathID()
	if !ok {
		return
	}

	page, pageSize := parsePagination(c.Ctx, c.Container.GetConfig().DefaultPageSize)
	archived, _ := strconv.ParseBool(c.Ctx.DefaultQuery("archived", "false"))

	documents, total, err := c.residentService().GetResidentDocuments(
		id, c.Ctx.Query("status"), archived, page, pageSize)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{
		"pagination": models.NewPaginationResult(total, page, pageSize),
		"documents":  documents,
	})
}

// 4. CreateResident registers a resident
// @Summary      Register a resident
// @Tags         Residents
// @Accept       json
// @Produce      json
// @Param        request body ResidentRequest true "Resident fields"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /residents [post]
// @Security     BearerAuth
func (c *ResidentController) CreateResident() {
	var req ResidentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "first_name, last_name and gender are required")
		return
	}

	input, err := req.toInput()
	if err != nil {
		response.ParamError(c.Ctx, "birth_date must be YYYY-MM-DD")
		return
	}

	userID := middleware.CurrentUserID(c.Ctx)
	resident, err := c.residentService().CreateResident(userID, input)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	c.auditService().LogAction(actorID(c.Ctx), "create_resident", "resident", resident.ID,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(),
		map[string]interface{}{"name": resident.FullName()})
	invalidateDashboard(c.Container)

	response.Success(c.Ctx, resident)
}

// 5. UpdateResident edits an active resident
// @Summary      Update a resident
// @Tags         Residents
// @Accept       json
// @Produce      json
// @Param        id path int true "Resident ID"
// @Param        request body ResidentRequest true "Resident fields"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /residents/{id} [put]
// @Security     BearerAuth
func (c *ResidentController) UpdateResident() {
	id, ok := c.pathID()
	if !ok {
		return
	}

	var req ResidentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "first_name, last_name and gender are required")
		return
	}

	input, err := req.toInput()
	if err != nil {
		response.ParamError(c.Ctx, "birth_date must be YYYY-MM-DD")
		return
	}

	userID := middleware.CurrentUserID(c.Ctx)
	resident, err := c.residentService().UpdateResident(userID, id, input)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	c.auditService().LogAction(actorID(c.Ctx), "update_resident", "resident", resident.ID,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(), nil)
	invalidateDashboard(c.Container)

	response.Success(c.Ctx, resident)
}

// 6. ArchiveResident soft-deletes a resident and its active documents
// @Summary      Archive a resident
// @Tags         Residents
// @Produce      json
// @Param        id path int true "Resident ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /residents/{id} [delete]
// @Security     BearerAuth
func (c *ResidentController) ArchiveResident() {
	id, ok := c.pathID()
	if !ok {
		return
	}

	userID := middleware.CurrentUserID(c.Ctx)
	if err := c.residentService().ArchiveResident(userID, id); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	c.auditService().LogAction(actorID(c.Ctx), "archive_resident", "resident", id,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(), nil)
	invalidateDashboard(c.Container)

	response.Success(c.Ctx, gin.H{"message": "resident archived"})
}

// 7. BulkArchiveResidents archives several residents
// @Summary      Archive residents in bulk
// @Tags         Residents
// @Accept       json
// @Produce      json
// @Param        request body BulkIDsRequest true "Resident IDs"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /residents/bulk-archive [post]
// @Security     BearerAuth
func (c *ResidentController) BulkArchiveResidents() {
	var req BulkIDsRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		response.ParamError(c.Ctx, "ids is required")
		return
	}

	userID := middleware.CurrentUserID(c.Ctx)
	archived, err := c.residentService().ArchiveResidents(userID, req.IDs)
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}

	c.auditService().LogAction(actorID(c.Ctx), "bulk_archive_residents", "resident", 0,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(),
		map[string]interface{}{"requested": len(req.IDs), "archived": archived})
	invalidateDashboard(c.Container)

	response.Success(c.Ctx, gin.H{"archived": archived})
}

// 8. RestoreResident brings an archived resident back
// @Summary      Restore a resident
// @Tags         Residents
// @Produce      json
// @Param        id path int true "Resident ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /residents/{id}/restore [post]
// @Security     BearerAuth
func (c *ResidentController) RestoreResident() {
	id, ok := c.pathID()
	if !ok {
		return
	}

	userID := middleware.CurrentUserID(c.Ctx)
	if err := c.residentService().RestoreResident(userID, id); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	c.auditService().LogAction(actorID(c.Ctx), "restore_resident", "resident", id,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(), nil)
	invalidateDashboard(c.Container)

	response.Success(c.Ctx, gin.H{"message": "resident restored"})
}

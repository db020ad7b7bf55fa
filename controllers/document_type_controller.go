package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/internal/error/response"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/middleware"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services/container"
)

// InterfaceDocumentTypeController defines the document type controller interface
type InterfaceDocumentTypeController interface {
	GetDocumentTypes()
	GetDocumentType()
	CreateDocumentType()
	UpdateDocumentType()
	DeleteDocumentType()
}

// DocumentTypeController handles document type endpoints
type DocumentTypeController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDocumentTypeController creates a new document type controller
func NewDocumentTypeController(ctx *gin.Context, container *container.ServiceContainer) *DocumentTypeController {
	return &DocumentTypeController{
		Ctx:       ctx,
		Container: container,
	}
}

// DocumentTypeRequest carries the document type fields
type DocumentTypeRequest struct {
	Name          string `json:"name" example:"Barangay Clearance"`
	Description   string `json:"description" example:"General purpose clearance"`
	TemplatePath  string `json:"template_path" example:"barangay_clearance"`
	RequiresPhoto *bool  `json:"requires_photo" example:"false"`
}

// HandleDocumentTypeFunc returns a gin handler for the document type controller
func HandleDocumentTypeFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDocumentTypeController(ctx, container)

		switch method {
		case "getDocumentTypes":
			controller.GetDocumentTypes()
		case "getDocumentType":
			controller.GetDocumentType()
		case "createDocumentType":
			controller.CreateDocumentType()
		case "updateDocumentType":
			controller.UpdateDocumentType()
		case "deleteDocumentType":
			controller.DeleteDocumentType()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "invalid method",
				"data":    nil,
			})
		}
	}
}

func (c *DocumentTypeController) typeService() services.InterfaceDocumentTypeService {
	return c.Container.GetService("document_type").(services.InterfaceDocumentTypeService)
}

func (c *DocumentTypeController) pathID() (uint, bool) {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.ParamError(c.Ctx, "invalid document type id")
		return 0, false
	}
	return uint(id), true
}

// 1. GetDocumentTypes lists all document types
// @Summary      List document types
// @Tags         DocumentTypes
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /document-types [get]
// @Security     BearerAuth
func (c *DocumentTypeController) GetDocumentTypes() {
	types, err := c.typeService().GetAllDocumentTypes()
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}
	response.Success(c.Ctx, types)
}

// 2. GetDocumentType loads one document type
// @Summary      Get a document type
// @Tags         DocumentTypes
// @Produce      json
// @Param        id path int true "Document type ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /document-types/{id} [get]
// @Security     BearerAuth
func (c *DocumentTypeController) GetDocumentType() {
	id, ok := c.pathID()
	if !ok {
		return
	}

	docType, err := c.typeService().GetDocumentTypeByID(id)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, docType)
}

// 3. CreateDocumentType creates a document type (admin)
// @Summary      Create a document type
// @Tags         DocumentTypes
// @Accept       json
// @Produce      json
// @Param        request body DocumentTypeRequest true "Document type fields"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  ErrorResponse
// @Router       /document-types [post]
// @Security     BearerAuth
func (c *DocumentTypeController) CreateDocumentType() {
	var req DocumentTypeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil || req.Name == "" {
		response.ParamError(c.Ctx, "name is required")
		return
	}

	docType := &models.DocumentType{
		Name:         req.Name,
		Description:  req.Description,
		TemplatePath: req.TemplatePath,
	}
	if req.RequiresPhoto != nil {
		docType.RequiresPhoto = *req.RequiresPhoto
	}

	if err := c.typeService().CreateDocumentType(docType); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	c.Container.GetService("audit").(services.InterfaceAuditService).LogAction(
		actorID(c.Ctx), "create_document_type", "document_type", docType.ID,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(),
		map[string]interface{}{"name": docType.Name})

	middleware.PurgeCache()
	response.Success(c.Ctx, docType)
}

// 4. UpdateDocumentType updates a document type (admin)
// @Summary      Update a document type
// @Tags         DocumentTypes
// @Accept       json
// @Produce      json
// @Param        id path int true "Document type ID"
// @Param        request body DocumentTypeRequest true "Document type fields"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  ErrorResponse
// @Router       /document-types/{id} [put]
// @Security     BearerAuth
func (c *DocumentTypeController) UpdateDocumentType() {
	id, ok := c.pathID()
	if !ok {
		return
	}

	var req DocumentTypeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "invalid request body")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.TemplatePath != "" {
		updates["template_path"] = req.TemplatePath
	}
	if req.RequiresPhoto != nil {
		updates["requires_photo"] = *req.RequiresPhoto
	}

	docType, err := c.typeService().UpdateDocumentType(id, updates)
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	c.Container.GetService("audit").(services.InterfaceAuditService).LogAction(
		actorID(c.Ctx), "update_document_type", "document_type", id,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(), nil)

	middleware.PurgeCache()
	response.Success(c.Ctx, docType)
}

// 5. DeleteDocumentType deletes an unused document type (admin)
// @Summary      Delete a document type
// @Tags         DocumentTypes
// @Produce      json
// @Param        id path int true "Document type ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  ErrorResponse
// @Router       /document-types/{id} [delete]
// @Security     BearerAuth
func (c *DocumentTypeController) DeleteDocumentType() {
	id, ok := c.pathID()
	if !ok {
		return
	}

	if err := c.typeService().DeleteDocumentType(id); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	c.Container.GetService("audit").(services.InterfaceAuditService).LogAction(
		actorID(c.Ctx), "delete_document_type", "document_type", id,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(), nil)

	middleware.PurgeCache()
	response.Success(c.Ctx, gin.H{"message": "document type deleted"})
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/internal/error/response"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services/container"
)

// InterfaceSearchController defines the search controller interface
type InterfaceSearchController interface {
	GlobalSearch()
}

// SearchController answers cross-entity searches for staff
type SearchController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewSearchController creates a new search controller
func NewSearchController(ctx *gin.Context, container *container.ServiceContainer) *SearchController {
	return &SearchController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleSearchFunc returns a gin handler for the search controller
func HandleSearchFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewSearchController(ctx, container)

		switch method {
		case "globalSearch":
			controller.GlobalSearch()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "invalid method",
				"data":    nil,
			})
		}
	}
}

// 1. GlobalSearch searches residents and documents in one query (staff)
// @Summary      Search residents and documents
// @Tags         Search
// @Produce      json
// @Param        q query string true "Search text"
// @Param        scope query string false "all, residents or documents (default all)"
// @Param        status query string false "Document status filter, draft matches every unissued status"
// @Param        type_id query int false "Document type filter"
// @Param        archived query bool false "Include archived records"
// @Param        page query int false "Page number, default 1"
// @Param        page_size query int false "Page size, default 20"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /search [get]
// @Security     BearerAuth
func (c *SearchController) GlobalSearch() {
	page, pageSize := parsePagination(c.Ctx, c.Container.GetConfig().DefaultPageSize)

	archived, _ := strconv.ParseBool(c.Ctx.DefaultQuery("archived", "false"))
	query := services.SearchQuery{
		Q:        c.Ctx.Query("q"),
		Scope:    c.Ctx.Query("scope"),
		Status:   c.Ctx.Query("status"),
		Archived: archived,
	}
	if typeID, err := strconv.ParseUint(c.Ctx.Query("type_id"), 10, 32); err == nil {
		query.TypeID = uint(typeID)
	}

	result, err := c.Container.GetService("search").(services.InterfaceSearchService).
		Search(query, page, pageSize)
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{
		"result": result,
		"resident_pagination": models.NewPaginationResult(
			result.ResidentTotal, page, pageSize),
		"document_pagination": models.NewPaginationResult(
			result.DocumentTotal, page, pageSize),
	})
}

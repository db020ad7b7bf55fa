package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/internal/error/response"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services/container"
)

// InterfaceAuditController defines the audit controller interface
type InterfaceAuditController interface {
	GetLogs()
}

// AuditController exposes the audit trail to administrators
type AuditController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuditController creates a new audit controller
func NewAuditController(ctx *gin.Context, container *container.ServiceContainer) *AuditController {
	return &AuditController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleAuditFunc returns a gin handler for the audit controller
func HandleAuditFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuditController(ctx, container)

		switch method {
		case "getLogs":
			controller.GetLogs()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "invalid method",
				"data":    nil,
			})
		}
	}
}

// 1. GetLogs lists the audit trail with an optional search (admin)
// @Summary      List audit logs
// @Tags         Audit
// @Produce      json
// @Param        page query int false "Page number, default 1"
// @Param        page_size query int false "Page size, default 20"
// @Param        q query string false "Search over action and username"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /audit-logs [get]
// @Security     BearerAuth
func (c *AuditController) GetLogs() {
	page, pageSize := parsePagination(c.Ctx, c.Container.GetConfig().DefaultPageSize)

	logs, total, err := c.Container.GetService("audit").(services.InterfaceAuditService).
		GetLogs(c.Ctx.Query("q"), page, pageSize)
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{
		"pagination": models.NewPaginationResult(total, page, pageSize),
		"logs":       logs,
	})
}

package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/internal/error/response"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services/container"
)

// InterfaceReportController defines the report controller interface
type InterfaceReportController interface {
	GetDashboard()
	GetReport()
	ExportReport()
}

// ReportController handles dashboard and report endpoints
type ReportController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewReportController creates a new report controller
func NewReportController(ctx *gin.Context, container *container.ServiceContainer) *ReportController {
	return &ReportController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleReportFunc returns a gin handler for the report controller
func HandleReportFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewReportController(ctx, container)

		switch method {
		case "getDashboard":
			controller.GetDashboard()
		case "getReport":
			controller.GetReport()
		case "exportReport":
			controller.ExportReport()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "invalid method",
				"data":    nil,
			})
		}
	}
}

func (c *ReportController) reportService() services.InterfaceReportService {
	return c.Container.GetService("report").(services.InterfaceReportService)
}

// reportWindow reads the from/to query params. The window defaults to
// the start of the current month through today.
func (c *ReportController) reportWindow() (time.Time, time.Time, bool) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	if raw := c.Ctx.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.ParamError(c.Ctx, "from must be YYYY-MM-DD")
			return from, to, false
		}
		from = parsed
	}
	if raw := c.Ctx.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.ParamError(c.Ctx, "to must be YYYY-MM-DD")
			return from, to, false
		}
		to = parsed.Add(24*time.Hour - time.Second)
	}
	if to.Before(from) {
		response.ParamError(c.Ctx, "to must not be before from")
		return from, to, false
	}
	return from, to, true
}

// 1. GetDashboard returns the dashboard statistics
// @Summary      Dashboard statistics
// @Tags         Reports
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /dashboard [get]
// @Security     BearerAuth
func (c *ReportController) GetDashboard() {
	stats, err := c.reportService().GetDashboardStats()
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}
	response.Success(c.Ctx, stats)
}

// 2. GetReport returns the issuance report for a date window
// @Summary      Issuance report
// @Tags         Reports
// @Produce      json
// @Param        from query string false "Window start (YYYY-MM-DD), defaults to month start"
// @Param        to query string false "Window end (YYYY-MM-DD), defaults to today"
// @Param        page query int false "Page number, default 1"
// @Param        page_size query int false "Page size, default 20"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /reports [get]
// @Security     BearerAuth
func (c *ReportController) GetReport() {
	from, to, ok := c.reportWindow()
	if !ok {
		return
	}

	summary, err := c.reportService().GetReportSummary(from, to)
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}

	page, pageSize := parsePagination(c.Ctx, c.Container.GetConfig().DefaultPageSize)
	rows, total, err := c.reportService().GetReportRows(from, to, page, pageSize)
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{
		"summary":    summary,
		"pagination": models.NewPaginationResult(total, page, pageSize),
		"rows":       rows,
	})
}

// 3. ExportReport streams the report as csv, xlsx or pdf
// @Summary      Export the issuance report
// @Tags         Reports
// @Produce      application/octet-stream
// @Param        format query string true "csv, xlsx or pdf"
// @Param        from query string false "Window start (YYYY-MM-DD)"
// @Param        to query string false "Window end (YYYY-MM-DD)"
// @Success      200  {file}  binary
// @Failure      400  {object}  ErrorResponse
// @Router       /reports/export [get]
// @Security     BearerAuth
func (c *ReportController) ExportReport() {
	from, to, ok := c.reportWindow()
	if !ok {
		return
	}

	format := c.Ctx.DefaultQuery("format", "csv")
	var (
		data        []byte
		contentType string
		err         error
	)
	switch format {
	case "csv":
		data, err = c.reportService().ExportCSV(from, to)
		contentType = "text/csv"
	case "xlsx":
		data, err = c.reportService().ExportXLSX(from, to)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		data, err = c.reportService().ExportPDF(from, to)
		contentType = "application/pdf"
	default:
		response.ParamError(c.Ctx, "format must be csv, xlsx or pdf")
		return
	}
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}

	c.Container.GetService("audit").(services.InterfaceAuditService).LogAction(
		actorID(c.Ctx), "export_report", "report", 0,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(),
		map[string]interface{}{"format": format, "from": from.Format("2006-01-02"), "to": to.Format("2006-01-02")})

	filename := fmt.Sprintf("report_%s_%s.%s", from.Format("20060102"), to.Format("20060102"), format)
	c.Ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Ctx.Data(http.StatusOK, contentType, data)
}

package controllers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/internal/error/response"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services/container"
)

// InterfaceBackupController defines the backup controller interface
type InterfaceBackupController interface {
	CreateBackup()
	ListBackups()
	DownloadBackup()
	RestoreBackup()
	DatabaseSize()
}

// BackupController handles database backup endpoints (admin only)
type BackupController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewBackupController creates a new backup controller
func NewBackupController(ctx *gin.Context, container *container.ServiceContainer) *BackupController {
	return &BackupController{
		Ctx:       ctx,
		Container: container,
	}
}

// RestoreBackupRequest names the backup file to restore
type RestoreBackupRequest struct {
	Name string `json:"name" binding:"required" example:"backup_20260801_120000.dump"`
}

// HandleBackupFunc returns a gin handler for the backup controller
func HandleBackupFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewBackupController(ctx, container)

		switch method {
		case "createBackup":
			controller.CreateBackup()
		case "listBackups":
			controller.ListBackups()
		case "downloadBackup":
			controller.DownloadBackup()
		case "restoreBackup":
			controller.RestoreBackup()
		case "databaseSize":
			controller.DatabaseSize()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "invalid method",
				"data":    nil,
			})
		}
	}
}

func (c *BackupController) backupService() services.InterfaceBackupService {
	return c.Container.GetService("backup").(services.InterfaceBackupService)
}

func (c *BackupController) auditService() services.InterfaceAuditService {
	return c.Container.GetService("audit").(services.InterfaceAuditService)
}

// 1. CreateBackup dumps the database to the backup directory
// @Summary      Create a database backup
// @Tags         Backups
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /backups [post]
// @Security     BearerAuth
func (c *BackupController) CreateBackup() {
	info, err := c.backupService().CreateBackup()
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	c.auditService().LogAction(actorID(c.Ctx), "create_backup", "backup", 0,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(),
		map[string]interface{}{"name": info.Name, "size": info.Size})

	response.Success(c.Ctx, info)
}

// 2. ListBackups lists the backup files, newest first
// @Summary      List backups
// @Tags         Backups
// @Produce      json
// @Param        date query string false "Filter by creation date (YYYY-MM-DD)"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /backups [get]
// @Security     BearerAuth
func (c *BackupController) ListBackups() {
	backups, err := c.backupService().ListBackups(c.Ctx.Query("date"))
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}
	response.Success(c.Ctx, backups)
}

// 3. DownloadBackup streams a backup file
// @Summary      Download a backup
// @Tags         Backups
// @Produce      application/octet-stream
// @Param        name path string true "Backup file name"
// @Success      200  {file}  binary
// @Failure      404  {object}  ErrorResponse
// @Router       /backups/{name} [get]
// @Security     BearerAuth
func (c *BackupController) DownloadBackup() {
	path, err := c.backupService().ResolveBackupPath(c.Ctx.Param("name"))
	if err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	c.auditService().LogAction(actorID(c.Ctx), "download_backup", "backup", 0,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(),
		map[string]interface{}{"name": filepath.Base(path)})

	c.Ctx.FileAttachment(path, filepath.Base(path))
}

// 4. RestoreBackup restores the database from a backup file
// @Summary      Restore from a backup
// @Tags         Backups
// @Accept       json
// @Produce      json
// @Param        request body RestoreBackupRequest true "Backup file name"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /backups/restore [post]
// @Security     BearerAuth
func (c *BackupController) RestoreBackup() {
	var req RestoreBackupRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "name is required")
		return
	}

	if err := c.backupService().RestoreBackup(req.Name); err != nil {
		handleServiceError(c.Ctx, err)
		return
	}

	c.auditService().LogAction(actorID(c.Ctx), "restore_backup", "backup", 0,
		c.Ctx.ClientIP(), c.Ctx.Request.UserAgent(),
		map[string]interface{}{"name": req.Name})

	response.Success(c.Ctx, gin.H{"message": "database restored"})
}

// 5. DatabaseSize reports the current database size
// @Summary      Database size
// @Tags         Backups
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /backups/db-size [get]
// @Security     BearerAuth
func (c *BackupController) DatabaseSize() {
	size, human, err := c.backupService().DatabaseSize()
	if err != nil {
		response.ServerError(c.Ctx)
		return
	}
	response.Success(c.Ctx, gin.H{"size": size, "size_human": human})
}

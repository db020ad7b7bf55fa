package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/config"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/controllers"
	_ "github.com/kaizen-2004/Barangay-Document-Management-System-V2/docs"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/middleware"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services/container"
)

// SetupRouter builds the configured gin engine
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) (*gin.Engine, *container.ServiceContainer) {
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.CORSAllowOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())

	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	middleware.InitAuthMiddleware(cfg)

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerRoutes(r, serviceContainer)
	return r, serviceContainer
}

// registerRoutes configures all API routes
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	api := r.Group("/api")

	registerPublicRoutes(api, container)
	registerStaffRoutes(api, container)
	registerAdminRoutes(api, container)
}

// registerPublicRoutes registers the unauthenticated routes
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// Health check
	api.GET("/health", controllers.HandleHealthFunc(container))

	// Authentication, rate limited per client IP and username
	auth := api.Group("/auth")
	auth.Use(middleware.CombinedRateLimiter(1, 10))
	auth.POST("/login", controllers.HandleAuthFunc(container, "login"))
	auth.POST("/login/verify", controllers.HandleAuthFunc(container, "verifyLogin"))
	auth.POST("/password/forgot", controllers.HandleAuthFunc(container, "forgotPassword"))
	auth.POST("/password/reset", controllers.HandleAuthFunc(container, "resetPassword"))
}

// registerStaffRoutes registers routes shared by clerks and administrators
func registerStaffRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	staff := api.Group("")
	staff.Use(middleware.AuthenticateStaff())

	// Password change for the signed-in account
	staff.POST("/auth/password/change", controllers.HandleAuthFunc(container, "changePassword"))

	// Residents
	staff.GET("/residents", controllers.HandleResidentFunc(container, "getResidents"))
	staff.GET("/residents/:id", controllers.HandleResidentFunc(container, "getResident"))
	staff.GET("/residents/:id/documents", controllers.HandleResidentFunc(container, "getResidentDocuments"))
	staff.POST("/residents", controllers.HandleResidentFunc(container, "createResident"))
	staff.PUT("/residents/:id", controllers.HandleResidentFunc(container, "updateResident"))
	staff.DELETE("/residents/:id", controllers.HandleResidentFunc(container, "archiveResident"))
	staff.POST("/residents/bulk-archive", controllers.HandleResidentFunc(container, "bulkArchiveResidents"))
	staff.POST("/residents/:id/restore", controllers.HandleResidentFunc(container, "restoreResident"))

	// Documents
	staff.GET("/documents", controllers.HandleDocumentFunc(container, "getDocuments"))
	staff.GET("/documents/:id", controllers.HandleDocumentFunc(container, "getDocument"))
	staff.POST("/documents", controllers.HandleDocumentFunc(container, "createDocument"))
	staff.PUT("/documents/:id", controllers.HandleDocumentFunc(container, "updateDocument"))
	staff.POST("/documents/:id/issue", controllers.HandleDocumentFunc(container, "issueDocument"))
	staff.POST("/documents/:id/revise", controllers.HandleDocumentFunc(container, "reviseDocument"))
	staff.DELETE("/documents/:id", controllers.HandleDocumentFunc(container, "archiveDocument"))
	staff.POST("/documents/bulk-archive", controllers.HandleDocumentFunc(container, "bulkArchiveDocuments"))
	staff.POST("/documents/:id/restore", controllers.HandleDocumentFunc(container, "restoreDocument"))
	staff.GET("/documents/:id/history", controllers.HandleDocumentFunc(container, "getDocumentHistory"))
	staff.GET("/documents/:id/download", controllers.HandleDocumentFunc(container, "downloadDocument"))

	// Document types, read side. The catalogue changes rarely so the
	// listing is served from the response cache.
	staff.GET("/document-types", middleware.Cache(), controllers.HandleDocumentTypeFunc(container, "getDocumentTypes"))
	staff.GET("/document-types/:id", controllers.HandleDocumentTypeFunc(container, "getDocumentType"))

	// Global search over residents and documents
	staff.GET("/search", controllers.HandleSearchFunc(container, "globalSearch"))

	// Dashboard and reports
	staff.GET("/dashboard", controllers.HandleReportFunc(container, "getDashboard"))
	staff.GET("/reports", controllers.HandleReportFunc(container, "getReport"))
	staff.GET("/reports/export", controllers.HandleReportFunc(container, "exportReport"))
}

// registerAdminRoutes registers administrator-only routes
func registerAdminRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	admin := api.Group("")
	admin.Use(middleware.AuthenticateAdmin())

	// Staff accounts
	admin.GET("/users", controllers.HandleUserFunc(container, "getUsers"))
	admin.GET("/users/:id", controllers.HandleUserFunc(container, "getUser"))
	admin.POST("/users", controllers.HandleUserFunc(container, "createUser"))
	admin.PUT("/users/:id", controllers.HandleUserFunc(container, "updateUser"))
	admin.DELETE("/users/:id", controllers.HandleUserFunc(container, "deleteUser"))

	// Document types, write side
	admin.POST("/document-types", controllers.HandleDocumentTypeFunc(container, "createDocumentType"))
	admin.PUT("/document-types/:id", controllers.HandleDocumentTypeFunc(container, "updateDocumentType"))
	admin.DELETE("/document-types/:id", controllers.HandleDocumentTypeFunc(container, "deleteDocumentType"))

	// Audit trail
	admin.GET("/audit-logs", controllers.HandleAuditFunc(container, "getLogs"))

	// Expired document sweep
	admin.POST("/documents/purge", controllers.HandleDocumentFunc(container, "purgeExpired"))

	// Backups
	admin.POST("/backups", controllers.HandleBackupFunc(container, "createBackup"))
	admin.GET("/backups", controllers.HandleBackupFunc(container, "listBackups"))
	admin.GET("/backups/db-size", controllers.HandleBackupFunc(container, "databaseSize"))
	admin.GET("/backups/:name", controllers.HandleBackupFunc(container, "downloadBackup"))
	admin.POST("/backups/restore", controllers.HandleBackupFunc(container, "restoreBackup"))
}

package container

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/config"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services"
)

// ServiceContainer wires all services together
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// Base services
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService
	mailService  services.InterfaceMailService

	// Business services
	authService         services.InterfaceAuthService
	userService         services.InterfaceUserService
	residentService     services.InterfaceResidentService
	documentService     services.InterfaceDocumentService
	documentTypeService services.InterfaceDocumentTypeService
	searchService       services.InterfaceSearchService
	auditService        services.InterfaceAuditService
	reportService       services.InterfaceReportService
	backupService       services.InterfaceBackupService
	pdfService          services.InterfacePDFService

	mu sync.RWMutex
}

// NewServiceContainer creates a new service container
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("database connection is nil")
	}
	if cfg == nil {
		panic("config is nil")
	}

	// Verify the Redis connection up front
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis ping failed: %v, continuing without cache", err)
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices initializes all services
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Base services
	c.jwtService = services.NewJWTService(c.config)
	c.redisService = services.NewRedisService(c.config)
	c.mailService = services.NewMailService(c.config)

	// Business services
	c.authService = services.NewAuthService(c.db, c.config, c.mailService)
	c.userService = services.NewUserService(c.db, c.config, c.authService)
	c.residentService = services.NewResidentService(c.db, c.config)
	c.pdfService = services.NewPDFService(c.db, c.config)
	c.documentService = services.NewDocumentService(c.db, c.config, c.pdfService)
	c.documentTypeService = services.NewDocumentTypeService(c.db, c.config)
	c.searchService = services.NewSearchService(c.db, c.config, c.residentService, c.documentService)
	c.auditService = services.NewAuditService(c.db, c.config)
	c.reportService = services.NewReportService(c.db, c.config, c.redisService)
	c.backupService = services.NewBackupService(c.db, c.config)
}

// GetService returns the named service
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "mail":
		return c.mailService
	case "auth":
		return c.authService
	case "user":
		return c.userService
	case "resident":
		return c.residentService
	case "document":
		return c.documentService
	case "document_type":
		return c.documentTypeService
	case "search":
		return c.searchService
	case "audit":
		return c.auditService
	case "report":
		return c.reportService
	case "backup":
		return c.backupService
	case "pdf":
		return c.pdfService
	default:
		return nil
	}
}

// GetDB returns the database handle
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// GetConfig returns the configuration
func (c *ServiceContainer) GetConfig() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// GetRedis returns the raw Redis client
func (c *ServiceContainer) GetRedis() *redis.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.redis
}

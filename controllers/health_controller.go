package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services/container"
)

// HealthController reports service health
type HealthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthController creates a new health controller
func NewHealthController(ctx *gin.Context, container *container.ServiceContainer) *HealthController {
	return &HealthController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleHealthFunc returns a gin handler for the health check
func HandleHealthFunc(container *container.ServiceContainer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		NewHealthController(ctx, container).Check()
	}
}

// Check verifies the database and Redis connections
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health [get]
func (c *HealthController) Check() {
	checks := gin.H{"database": "ok", "redis": "ok"}
	healthy := true

	var one int
	if err := c.Container.GetDB().Raw("SELECT 1").Scan(&one).Error; err != nil {
		checks["database"] = "unavailable"
		healthy = false
	}

	if err := c.Container.GetService("redis").(services.InterfaceRedisService).Ping(); err != nil {
		checks["redis"] = "unavailable"
	}

	status := http.StatusOK
	state := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.Ctx.JSON(status, gin.H{"status": state, "checks": checks})
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/makerport/makerport/internal/models"
	"github.com/makerport/makerport/internal/services"
	"github.com/makerport/makerport/internal/store"
)

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	projects *store.Projects
	queue    services.TaskQueue
	hub      *services.Hub
}

func NewHealthHandler(projects *store.Projects, queue services.TaskQueue, hub *services.Hub) *HealthHandler {
	return &HealthHandler{projects: projects, queue: queue, hub: hub}
}

// CheckHealth returns the health status of all subsystems.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	// Database check
	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	queueMode := "sync"
	if h.queue != nil && h.queue.IsAsync() {
		queueMode = "async (Redis)"
	}

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "makerport",
		"components": gin.H{
			"database":    dbStatus,
			"queue_mode":  queueMode,
			"sse_clients": h.hub.ClientCount(),
			"projects":    len(h.projects.All()),
		},
	})
}

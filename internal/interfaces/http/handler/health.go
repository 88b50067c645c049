package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthHandler exposes liveness and readiness probes
type HealthHandler struct {
	BaseHandler
	db *gorm.DB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		BaseHandler: NewBaseHandler(logger),
		db:          db,
	}
}

// RegisterPublicRoutes mounts the health routes
func (h *HealthHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/healthz", h.Liveness)
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Health handles GET /health. Includes a database ping so load
// balancers stop routing traffic when the database is unreachable.
func (h *HealthHandler) Health(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"
	code := http.StatusOK

	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			status = "degraded"
			dbStatus = "unreachable"
			code = http.StatusServiceUnavailable
			if h.logger != nil {
				h.logger.Warn("health check database ping failed", zap.Error(err))
			}
		}
	}

	c.JSON(code, gin.H{
		"status":    status,
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

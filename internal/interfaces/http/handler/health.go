package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wims/backend/internal/infrastructure/persistence"
	"github.com/wims/backend/internal/interfaces/http/dto"
)

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	BaseHandler
	db *persistence.Database
}

// NewHealthHandler creates a health handler
func NewHealthHandler(db *persistence.Database, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		BaseHandler: NewBaseHandler(logger),
		db:          db,
	}
}

// Register registers the health route directly on the engine, outside
// the authenticated API group
func (h *HealthHandler) Register(engine *gin.Engine) {
	engine.GET("/health", h.Health)
}

// Health reports process and database health
func (h *HealthHandler) Health(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"

	if err := h.db.Ping(); err != nil {
		status = "degraded"
		dbStatus = "unreachable"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, dto.NewSuccessResponse(gin.H{
		"status":   status,
		"database": dbStatus,
	}))
}

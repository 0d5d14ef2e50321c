package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/dealtrack/dealtrack_api/internal/utils"
)

// HealthHandler reports service liveness.
type HealthHandler struct {
	db *sqlx.DB
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check handles GET /health.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		utils.Error(c, http.StatusServiceUnavailable, "UNHEALTHY", "Database unreachable")
		return
	}
	utils.Success(c, http.StatusOK, "OK", gin.H{"status": "healthy"})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealtrack/dealtrack_api/internal/service"
	"github.com/dealtrack/dealtrack_api/internal/utils"
)

// HistoryHandler serves browsing history.
type HistoryHandler struct {
	history *service.HistoryService
}

// NewHistoryHandler creates a HistoryHandler.
func NewHistoryHandler(history *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

type recordViewRequest struct {
	PID int64 `json:"pid" binding:"required"`
}

// List handles GET /api/history.
func (h *HistoryHandler) List(c *gin.Context) {
	uid := c.GetInt64("user_id")
	limit := queryInt(c, "limit", 50)

	items, err := h.history.List(c.Request.Context(), uid, limit)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list history")
		return
	}
	utils.Success(c, http.StatusOK, "History retrieved", items)
}

// Record handles POST /api/history.
func (h *HistoryHandler) Record(c *gin.Context) {
	uid := c.GetInt64("user_id")

	var req recordViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if err := h.history.Record(c.Request.Context(), uid, req.PID); err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			utils.Error(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record view")
		return
	}
	utils.Success(c, http.StatusOK, "View recorded", nil)
}

// Clear handles DELETE /api/history.
func (h *HistoryHandler) Clear(c *gin.Context) {
	uid := c.GetInt64("user_id")

	if err := h.history.Clear(c.Request.Context(), uid); err != nil {
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to clear history")
		return
	}
	utils.Success(c, http.StatusOK, "History cleared", nil)
}

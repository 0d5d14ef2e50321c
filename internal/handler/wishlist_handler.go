package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealtrack/dealtrack_api/internal/service"
	"github.com/dealtrack/dealtrack_api/internal/sse"
	"github.com/dealtrack/dealtrack_api/internal/utils"
)

// WishlistHandler serves the wishlist and its price alerts.
type WishlistHandler struct {
	wishlist *service.WishlistService
	alerts   *service.AlertService
	hub      *sse.Hub
}

// NewWishlistHandler creates a WishlistHandler.
func NewWishlistHandler(wishlist *service.WishlistService, alerts *service.AlertService, hub *sse.Hub) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist, alerts: alerts, hub: hub}
}

type addWishRequest struct {
	PID         int64    `json:"pid" binding:"required"`
	TargetPrice *float64 `json:"targetPrice"`
}

// List handles GET /api/wishlist.
func (h *WishlistHandler) List(c *gin.Context) {
	uid := c.GetInt64("user_id")

	items, err := h.wishlist.List(c.Request.Context(), uid)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list wishlist")
		return
	}
	utils.Success(c, http.StatusOK, "Wishlist retrieved", items)
}

// Add handles POST /api/wishlist.
func (h *WishlistHandler) Add(c *gin.Context) {
	uid := c.GetInt64("user_id")

	var req addWishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	err := h.wishlist.Add(c.Request.Context(), uid, req.PID, req.TargetPrice)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrProductNotFound):
			utils.Error(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
		case errors.Is(err, utils.ErrInvalidTargetPrice):
			utils.Error(c, http.StatusBadRequest, "INVALID_TARGET_PRICE", "Target price must be positive")
		default:
			utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update wishlist")
		}
		return
	}
	utils.Success(c, http.StatusOK, "Wishlist updated", nil)
}

// Remove handles DELETE /api/wishlist/:pid.
func (h *WishlistHandler) Remove(c *gin.Context) {
	uid := c.GetInt64("user_id")

	pid, err := strconv.ParseInt(c.Param("pid"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid product id")
		return
	}

	if err := h.wishlist.Remove(c.Request.Context(), uid, pid); err != nil {
		if errors.Is(err, utils.ErrWishlistNotFound) {
			utils.Error(c, http.StatusNotFound, "NOT_FOUND", "Wishlist entry not found")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update wishlist")
		return
	}
	utils.Success(c, http.StatusOK, "Wishlist entry removed", nil)
}

// Alerts handles GET /api/wishlist/alerts. Reading alerts fires pending
// notifications as a side effect.
func (h *WishlistHandler) Alerts(c *gin.Context) {
	uid := c.GetInt64("user_id")

	items, err := h.alerts.Alerts(c.Request.Context(), uid)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load alerts")
		return
	}
	utils.Success(c, http.StatusOK, "Alerts retrieved", items)
}

// Acknowledge handles POST /api/wishlist/:pid/ack.
func (h *WishlistHandler) Acknowledge(c *gin.Context) {
	uid := c.GetInt64("user_id")

	pid, err := strconv.ParseInt(c.Param("pid"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid product id")
		return
	}

	if err := h.alerts.Acknowledge(c.Request.Context(), uid, pid); err != nil {
		if errors.Is(err, utils.ErrWishlistNotFound) {
			utils.Error(c, http.StatusNotFound, "NOT_FOUND", "No unread alert for this product")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to acknowledge alert")
		return
	}
	utils.Success(c, http.StatusOK, "Alert acknowledged", nil)
}

// Stream handles GET /api/wishlist/alerts/stream, an SSE stream of
// alert.triggered events for the authenticated user.
func (h *WishlistHandler) Stream(c *gin.Context) {
	uid := c.GetInt64("user_id")

	events, cancel := h.hub.Subscribe(uid)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(ev.Type, ev.Data)
			return true
		case <-keepalive.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealtrack/dealtrack_api/internal/service"
	"github.com/dealtrack/dealtrack_api/internal/utils"
)

// AdminHandler exposes the maintenance pipelines for manual triggering.
// These calls run synchronously and can take minutes with a large catalog;
// callers should use a generous client timeout.
type AdminHandler struct {
	importer  *service.ImportService
	refresher *service.RefreshService
	syncer    *service.PriceSyncService
	alerts    *service.AlertService
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(importer *service.ImportService, refresher *service.RefreshService, syncer *service.PriceSyncService, alerts *service.AlertService) *AdminHandler {
	return &AdminHandler{
		importer:  importer,
		refresher: refresher,
		syncer:    syncer,
		alerts:    alerts,
	}
}

type importRequest struct {
	Queries []string `json:"queries"`
}

// Import handles POST /api/admin/import. An empty body seeds the default
// catalog.
func (h *AdminHandler) Import(c *gin.Context) {
	var req importRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
	}

	summary, err := h.importer.Run(c.Request.Context(), req.Queries)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Import aborted")
		return
	}
	utils.Success(c, http.StatusOK, "Import completed", summary)
}

// RefreshPrices handles POST /api/admin/refresh-prices: re-read every
// listing, then re-derive display fields and re-arm alerts.
func (h *AdminHandler) RefreshPrices(c *gin.Context) {
	ctx := c.Request.Context()

	refresh, err := h.refresher.RefreshAll(ctx)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Price refresh aborted")
		return
	}

	sync, err := h.syncer.SyncAll(ctx)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Price sync aborted")
		return
	}

	rearmed, err := h.alerts.Rearm(ctx)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Alert re-arm failed")
		return
	}

	utils.Success(c, http.StatusOK, "Prices refreshed", gin.H{
		"refresh": refresh,
		"sync":    sync,
		"rearmed": rearmed,
	})
}

// SyncPrices handles POST /api/admin/sync-prices: re-derive display fields
// from stored observations without hitting the marketplaces.
func (h *AdminHandler) SyncPrices(c *gin.Context) {
	summary, err := h.syncer.SyncAll(c.Request.Context())
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Price sync aborted")
		return
	}
	utils.Success(c, http.StatusOK, "Prices synced", summary)
}

// ResetAlerts handles POST /api/admin/reset-alerts: run the alert re-arm
// sweep on its own, outside the nightly cycle.
func (h *AdminHandler) ResetAlerts(c *gin.Context) {
	rearmed, err := h.alerts.Rearm(c.Request.Context())
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Alert re-arm failed")
		return
	}
	utils.Success(c, http.StatusOK, "Alerts reset", gin.H{"rearmed": rearmed})
}

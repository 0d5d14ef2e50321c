package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dealtrack/dealtrack_api/internal/service"
	"github.com/dealtrack/dealtrack_api/internal/utils"
)

// PriceHandler serves current prices and price history.
type PriceHandler struct {
	prices *service.PriceService
}

// NewPriceHandler creates a PriceHandler.
func NewPriceHandler(prices *service.PriceService) *PriceHandler {
	return &PriceHandler{prices: prices}
}

// Latest handles GET /api/products/:pid/prices.
func (h *PriceHandler) Latest(c *gin.Context) {
	pid, err := strconv.ParseInt(c.Param("pid"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid product id")
		return
	}

	offers, err := h.prices.Latest(c.Request.Context(), pid)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load prices")
		return
	}
	utils.Success(c, http.StatusOK, "Prices retrieved", offers)
}

// History handles GET /api/products/:pid/history.
func (h *PriceHandler) History(c *gin.Context) {
	pid, err := strconv.ParseInt(c.Param("pid"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid product id")
		return
	}

	days := queryInt(c, "days", 30)
	points, err := h.prices.History(c.Request.Context(), pid, days)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load price history")
		return
	}
	utils.Success(c, http.StatusOK, "Price history retrieved", points)
}

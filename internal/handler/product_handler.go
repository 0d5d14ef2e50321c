package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dealtrack/dealtrack_api/internal/repository"
	"github.com/dealtrack/dealtrack_api/internal/service"
	"github.com/dealtrack/dealtrack_api/internal/utils"
)

// ProductHandler serves the product catalog.
type ProductHandler struct {
	products *service.ProductService
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List handles GET /api/products.
func (h *ProductHandler) List(c *gin.Context) {
	filter := repository.ProductFilter{
		Category: c.Query("category"),
		Platform: c.Query("platform"),
		Search:   c.Query("search"),
		MinPrice: queryFloat(c, "minPrice"),
		MaxPrice: queryFloat(c, "maxPrice"),
		Limit:    queryInt(c, "limit", 50),
		Offset:   queryInt(c, "offset", 0),
	}

	products, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list products")
		return
	}
	utils.Success(c, http.StatusOK, "Products retrieved", products)
}

// Get handles GET /api/products/:pid.
func (h *ProductHandler) Get(c *gin.Context) {
	pid, err := strconv.ParseInt(c.Param("pid"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid product id")
		return
	}

	product, err := h.products.Get(c.Request.Context(), pid)
	if err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			utils.Error(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load product")
		return
	}
	utils.Success(c, http.StatusOK, "Product retrieved", product)
}

// Categories handles GET /api/products/categories.
func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.products.Categories(c.Request.Context())
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list categories")
		return
	}
	utils.Success(c, http.StatusOK, "Categories retrieved", categories)
}

func queryFloat(c *gin.Context, name string) float64 {
	v, err := strconv.ParseFloat(c.Query(name), 64)
	if err != nil {
		return 0
	}
	return v
}

func queryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}

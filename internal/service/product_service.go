package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dealtrack/dealtrack_api/internal/models"
	"github.com/dealtrack/dealtrack_api/internal/repository"
	"github.com/dealtrack/dealtrack_api/internal/utils"
)

// ProductService serves the product catalog.
type ProductService struct {
	products ProductStore
}

// NewProductService creates a ProductService.
func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products}
}

// Get fetches one product.
func (s *ProductService) Get(ctx context.Context, pid int64) (*models.Product, error) {
	p, err := s.products.GetByID(ctx, pid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, utils.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns products matching the filter.
func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter) ([]models.Product, error) {
	return s.products.List(ctx, filter)
}

// Categories returns the distinct catalog categories.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.products.Categories(ctx)
}

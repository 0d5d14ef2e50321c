// Package repository contains the Postgres data access layer.
package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/dealtrack/dealtrack_api/internal/models"
)

// ProductRepo handles product data access.
type ProductRepo struct {
	db *sqlx.DB
}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo(db *sqlx.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// ProductFilter narrows product listings. Zero values mean "no constraint".
type ProductFilter struct {
	Category string
	Platform string
	Search   string
	MinPrice float64
	MaxPrice float64
	Limit    int
	Offset   int
}

const productColumns = `pid, short_title, title, price, platforms, free_shipping, in_stock,
	rating, information, category, image_url, created_at, updated_at`

// Create inserts a product and fills in its generated id and timestamps.
func (r *ProductRepo) Create(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (short_title, title, price, platforms, free_shipping, in_stock,
			rating, information, category, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING pid, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		p.ShortTitle, p.Title, p.Price, p.Platforms, p.FreeShipping, p.InStock,
		p.Rating, p.Information, p.Category, p.ImageURL,
	).Scan(&p.PID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetByID fetches one product. Returns sql.ErrNoRows when absent.
func (r *ProductRepo) GetByID(ctx context.Context, pid int64) (*models.Product, error) {
	var p models.Product
	query := `SELECT ` + productColumns + ` FROM products WHERE pid = $1`
	if err := r.db.GetContext(ctx, &p, query, pid); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns products matching the filter, newest first.
func (r *ProductRepo) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}

	if filter.Category != "" {
		add("category = ?", filter.Category)
	}
	if filter.Platform != "" {
		add("? = ANY(platforms)", filter.Platform)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := strconv.Itoa(len(args))
		conds = append(conds, "(title ILIKE $"+n+" OR short_title ILIKE $"+n+")")
	}
	if filter.MinPrice > 0 {
		add("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		add("price <= ?", filter.MaxPrice)
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY updated_at DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += " OFFSET $" + strconv.Itoa(len(args))
	}

	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// ListIDs returns every product id, oldest first.
func (r *ProductRepo) ListIDs(ctx context.Context) ([]int64, error) {
	ids := []int64{}
	if err := r.db.SelectContext(ctx, &ids, `SELECT pid FROM products ORDER BY pid`); err != nil {
		return nil, fmt.Errorf("failed to list product ids: %w", err)
	}
	return ids, nil
}

// UpdateDisplay writes the derived display fields of one product.
func (r *ProductRepo) UpdateDisplay(ctx context.Context, pid int64, price float64, platforms pq.StringArray, freeShipping, inStock bool) error {
	query := `
		UPDATE products
		SET price = $2, platforms = $3, free_shipping = $4, in_stock = $5, updated_at = NOW()
		WHERE pid = $1`

	if _, err := r.db.ExecContext(ctx, query, pid, price, platforms, freeShipping, inStock); err != nil {
		return fmt.Errorf("failed to update product display fields: %w", err)
	}
	return nil
}

// Categories returns the distinct categories currently in the catalog.
func (r *ProductRepo) Categories(ctx context.Context) ([]string, error) {
	categories := []string{}
	if err := r.db.SelectContext(ctx, &categories, `SELECT DISTINCT category FROM products ORDER BY category`); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

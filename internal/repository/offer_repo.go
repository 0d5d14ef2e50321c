package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dealtrack/dealtrack_api/internal/models"
)

// OfferRepo handles price observation data access. The price_offers table is
// append-only: observations are inserted, never updated or deleted.
type OfferRepo struct {
	db *sqlx.DB
}

// NewOfferRepo creates a new OfferRepo.
func NewOfferRepo(db *sqlx.DB) *OfferRepo {
	return &OfferRepo{db: db}
}

// ListingRow is the most recent stored listing reference of one product on
// one platform, used to re-fetch current prices.
type ListingRow struct {
	PID       int64  `db:"pid"`
	Platform  string `db:"platform"`
	ListingID string `db:"listing_id"`
	Link      string `db:"link"`
}

// Insert appends one observation and fills in its generated id and timestamp.
func (r *OfferRepo) Insert(ctx context.Context, o *models.PlatformOffer) error {
	query := `
		INSERT INTO price_offers (pid, platform, price, free_shipping, in_stock, listing_id, link)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, observed_at`

	err := r.db.QueryRowxContext(ctx, query,
		o.PID, o.Platform, o.Price, o.FreeShipping, o.InStock, o.ListingID, o.Link,
	).Scan(&o.ID, &o.ObservedAt)
	if err != nil {
		return fmt.Errorf("failed to insert offer: %w", err)
	}
	return nil
}

// LatestPerPlatform returns the newest observation of a product on each
// platform that has ever recorded one.
func (r *OfferRepo) LatestPerPlatform(ctx context.Context, pid int64) ([]models.PlatformOffer, error) {
	query := `
		SELECT o.id, o.pid, o.platform, o.price, o.free_shipping, o.in_stock,
			o.observed_at, o.listing_id, o.link
		FROM price_offers o
		JOIN (
			SELECT platform, MAX(observed_at) AS max_at
			FROM price_offers
			WHERE pid = $1
			GROUP BY platform
		) m ON o.platform = m.platform AND o.observed_at = m.max_at
		WHERE o.pid = $1
		ORDER BY o.price`

	offers := []models.PlatformOffer{}
	if err := r.db.SelectContext(ctx, &offers, query, pid); err != nil {
		return nil, fmt.Errorf("failed to load latest offers: %w", err)
	}
	return offers, nil
}

// ListListingRefs returns the most recent listing reference per (product,
// platform) pair, for every tracked product.
func (r *OfferRepo) ListListingRefs(ctx context.Context) ([]ListingRow, error) {
	query := `
		SELECT DISTINCT ON (pid, platform) pid, platform, listing_id, link
		FROM price_offers
		ORDER BY pid, platform, observed_at DESC`

	rows := []ListingRow{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list listing refs: %w", err)
	}
	return rows, nil
}

// History returns the daily minimum price of a product over the last N days,
// oldest first. eBay observations are excluded because auction totals distort
// the trend line.
func (r *OfferRepo) History(ctx context.Context, pid int64, days int) ([]models.PricePoint, error) {
	if days <= 0 {
		days = 30
	}

	query := `
		SELECT to_char(observed_at::date, 'YYYY-MM-DD') AS date, MIN(price) AS price
		FROM price_offers
		WHERE pid = $1 AND platform <> $2 AND price > 0
		GROUP BY observed_at::date
		ORDER BY observed_at::date DESC
		LIMIT $3`

	points := []models.PricePoint{}
	if err := r.db.SelectContext(ctx, &points, query, pid, models.PlatformEbay, days); err != nil {
		return nil, fmt.Errorf("failed to load price history: %w", err)
	}

	// Newest-first from the query, flipped to chart order.
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dealtrack/dealtrack_api/internal/models"
)

// WishlistRepo handles wishlist and alert-state data access.
type WishlistRepo struct {
	db *sqlx.DB
}

// NewWishlistRepo creates a new WishlistRepo.
func NewWishlistRepo(db *sqlx.DB) *WishlistRepo {
	return &WishlistRepo{db: db}
}

// currentPriceSQL computes the current lowest price of one product from its
// newest observation per platform. It mirrors the display-price definition:
// the minimum over all current offers, stock state included.
const currentPriceSQL = `
	SELECT MIN(o.price)
	FROM price_offers o
	JOIN (
		SELECT platform, MAX(observed_at) AS max_at
		FROM price_offers
		WHERE pid = w.pid
		GROUP BY platform
	) m ON o.platform = m.platform AND o.observed_at = m.max_at
	WHERE o.pid = w.pid AND o.price > 0`

// Upsert adds a product to a user's wishlist or updates its target price.
// Changing the target re-arms the alert.
func (r *WishlistRepo) Upsert(ctx context.Context, uid, pid int64, targetPrice *float64) error {
	query := `
		INSERT INTO wishlist (uid, pid, target_price)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid, pid) DO UPDATE
		SET target_price = EXCLUDED.target_price, alert_status = 0, updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, uid, pid, targetPrice); err != nil {
		return fmt.Errorf("failed to upsert wishlist entry: %w", err)
	}
	return nil
}

// Delete removes a product from a user's wishlist. Returns sql.ErrNoRows
// when the entry does not exist.
func (r *WishlistRepo) Delete(ctx context.Context, uid, pid int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM wishlist WHERE uid = $1 AND pid = $2`, uid, pid)
	if err != nil {
		return fmt.Errorf("failed to delete wishlist entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Get fetches one wishlist entry. Returns sql.ErrNoRows when absent.
func (r *WishlistRepo) Get(ctx context.Context, uid, pid int64) (*models.WishlistEntry, error) {
	var e models.WishlistEntry
	query := `
		SELECT uid, pid, target_price, alert_status, last_alert_at, created_at, updated_at
		FROM wishlist WHERE uid = $1 AND pid = $2`
	if err := r.db.GetContext(ctx, &e, query, uid, pid); err != nil {
		return nil, err
	}
	return &e, nil
}

// ListForUser returns a user's wishlist joined with product display data and
// the current lowest price per product.
func (r *WishlistRepo) ListForUser(ctx context.Context, uid int64) ([]models.WishlistItem, error) {
	query := `
		SELECT w.uid, w.pid, w.target_price, w.alert_status, w.last_alert_at,
			p.short_title, p.title, p.rating, p.category, p.image_url,
			(` + currentPriceSQL + `) AS current_price
		FROM wishlist w
		JOIN products p ON p.pid = w.pid
		WHERE w.uid = $1
		ORDER BY w.created_at DESC`

	items := []models.WishlistItem{}
	if err := r.db.SelectContext(ctx, &items, query, uid); err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	return items, nil
}

// MarkNotified records that an alert fired for one entry.
func (r *WishlistRepo) MarkNotified(ctx context.Context, uid, pid int64, at time.Time) error {
	query := `
		UPDATE wishlist
		SET alert_status = $3, last_alert_at = $4, updated_at = NOW()
		WHERE uid = $1 AND pid = $2`

	if _, err := r.db.ExecContext(ctx, query, uid, pid, models.AlertNotified, at); err != nil {
		return fmt.Errorf("failed to mark alert notified: %w", err)
	}
	return nil
}

// Acknowledge moves a fired alert to the read state. Returns sql.ErrNoRows
// when the entry has no unread alert.
func (r *WishlistRepo) Acknowledge(ctx context.Context, uid, pid int64) error {
	query := `
		UPDATE wishlist
		SET alert_status = $3, updated_at = NOW()
		WHERE uid = $1 AND pid = $2 AND alert_status = $4`

	res, err := r.db.ExecContext(ctx, query, uid, pid, models.AlertRead, models.AlertNotified)
	if err != nil {
		return fmt.Errorf("failed to acknowledge alert: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ResetBelowTarget re-arms every non-idle alert whose product currently sits
// at or under its target price, so the next wishlist read can fire again.
// Returns the number of entries reset.
func (r *WishlistRepo) ResetBelowTarget(ctx context.Context) (int64, error) {
	query := `
		UPDATE wishlist w
		SET alert_status = 0, updated_at = NOW()
		WHERE w.target_price IS NOT NULL
			AND w.alert_status <> 0
			AND (` + currentPriceSQL + `) <= w.target_price`

	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to re-arm alerts: %w", err)
	}
	return res.RowsAffected()
}

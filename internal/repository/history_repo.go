package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dealtrack/dealtrack_api/internal/models"
)

// HistoryRepo handles browsing-history data access.
type HistoryRepo struct {
	db *sqlx.DB
}

// NewHistoryRepo creates a new HistoryRepo.
func NewHistoryRepo(db *sqlx.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Record notes that a user viewed a product. Re-viewing bumps the timestamp
// instead of adding a duplicate row.
func (r *HistoryRepo) Record(ctx context.Context, uid, pid int64) error {
	query := `
		INSERT INTO view_history (uid, pid)
		VALUES ($1, $2)
		ON CONFLICT (uid, pid) DO UPDATE SET viewed_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, uid, pid); err != nil {
		return fmt.Errorf("failed to record view: %w", err)
	}
	return nil
}

// ListForUser returns a user's recently viewed products, newest first.
func (r *HistoryRepo) ListForUser(ctx context.Context, uid int64, limit int) ([]models.ViewHistoryItem, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT h.id, h.pid, p.short_title, p.price, p.category, p.image_url, h.viewed_at
		FROM view_history h
		JOIN products p ON p.pid = h.pid
		WHERE h.uid = $1
		ORDER BY h.viewed_at DESC
		LIMIT $2`

	items := []models.ViewHistoryItem{}
	if err := r.db.SelectContext(ctx, &items, query, uid, limit); err != nil {
		return nil, fmt.Errorf("failed to list view history: %w", err)
	}
	return items, nil
}

// Clear removes a user's entire browsing history.
func (r *HistoryRepo) Clear(ctx context.Context, uid int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM view_history WHERE uid = $1`, uid); err != nil {
		return fmt.Errorf("failed to clear view history: %w", err)
	}
	return nil
}

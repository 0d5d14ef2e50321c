package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dealtrack/dealtrack_api/internal/models"
	"github.com/dealtrack/dealtrack_api/internal/utils"
)

// HistoryService tracks which products a user has viewed.
type HistoryService struct {
	history  HistoryStore
	products ProductStore
}

// NewHistoryService creates a HistoryService.
func NewHistoryService(history HistoryStore, products ProductStore) *HistoryService {
	return &HistoryService{history: history, products: products}
}

// Record notes a product view. Re-viewing bumps the entry to the top.
func (s *HistoryService) Record(ctx context.Context, uid, pid int64) error {
	if _, err := s.products.GetByID(ctx, pid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrProductNotFound
		}
		return err
	}
	return s.history.Record(ctx, uid, pid)
}

// List returns a user's recently viewed products, newest first.
func (s *HistoryService) List(ctx context.Context, uid int64, limit int) ([]models.ViewHistoryItem, error) {
	return s.history.ListForUser(ctx, uid, limit)
}

// Clear wipes a user's browsing history.
func (s *HistoryService) Clear(ctx context.Context, uid int64) error {
	return s.history.Clear(ctx, uid)
}

package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dealtrack/dealtrack_api/internal/models"
	"github.com/dealtrack/dealtrack_api/internal/utils"
)

// WishlistService manages the user-facing wishlist. Target prices are
// written here; alert state is owned by AlertService.
type WishlistService struct {
	wishlist WishlistStore
	products ProductStore
}

// NewWishlistService creates a WishlistService.
func NewWishlistService(wishlist WishlistStore, products ProductStore) *WishlistService {
	return &WishlistService{wishlist: wishlist, products: products}
}

// Add puts a product on a user's wishlist, or updates its target price if
// already present. A changed target re-arms the alert. targetPrice may be
// nil for a wish without an alert.
func (s *WishlistService) Add(ctx context.Context, uid, pid int64, targetPrice *float64) error {
	if targetPrice != nil && *targetPrice <= 0 {
		return utils.ErrInvalidTargetPrice
	}

	if _, err := s.products.GetByID(ctx, pid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrProductNotFound
		}
		return err
	}

	return s.wishlist.Upsert(ctx, uid, pid, targetPrice)
}

// Remove deletes a product from a user's wishlist.
func (s *WishlistService) Remove(ctx context.Context, uid, pid int64) error {
	err := s.wishlist.Delete(ctx, uid, pid)
	if errors.Is(err, sql.ErrNoRows) {
		return utils.ErrWishlistNotFound
	}
	return err
}

// List returns a user's wishlist with current prices, newest first.
func (s *WishlistService) List(ctx context.Context, uid int64) ([]models.WishlistItem, error) {
	return s.wishlist.ListForUser(ctx, uid)
}

// Package service implements the tracker's business logic: importing
// products, refreshing and syncing prices, and firing wishlist alerts.
package service

import (
	"context"
	"time"

	"github.com/lib/pq"

	"github.com/dealtrack/dealtrack_api/internal/models"
	"github.com/dealtrack/dealtrack_api/internal/repository"
)

// ProductStore is the product persistence surface the services depend on.
type ProductStore interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, pid int64) (*models.Product, error)
	List(ctx context.Context, filter repository.ProductFilter) ([]models.Product, error)
	ListIDs(ctx context.Context) ([]int64, error)
	UpdateDisplay(ctx context.Context, pid int64, price float64, platforms pq.StringArray, freeShipping, inStock bool) error
	Categories(ctx context.Context) ([]string, error)
}

// OfferStore is the price observation persistence surface.
type OfferStore interface {
	Insert(ctx context.Context, o *models.PlatformOffer) error
	LatestPerPlatform(ctx context.Context, pid int64) ([]models.PlatformOffer, error)
	ListListingRefs(ctx context.Context) ([]repository.ListingRow, error)
	History(ctx context.Context, pid int64, days int) ([]models.PricePoint, error)
}

// WishlistStore is the wishlist persistence surface.
type WishlistStore interface {
	Upsert(ctx context.Context, uid, pid int64, targetPrice *float64) error
	Delete(ctx context.Context, uid, pid int64) error
	Get(ctx context.Context, uid, pid int64) (*models.WishlistEntry, error)
	ListForUser(ctx context.Context, uid int64) ([]models.WishlistItem, error)
	MarkNotified(ctx context.Context, uid, pid int64, at time.Time) error
	Acknowledge(ctx context.Context, uid, pid int64) error
	ResetBelowTarget(ctx context.Context) (int64, error)
}

// UserStore is the account persistence surface.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// HistoryStore is the browsing-history persistence surface.
type HistoryStore interface {
	Record(ctx context.Context, uid, pid int64) error
	ListForUser(ctx context.Context, uid int64, limit int) ([]models.ViewHistoryItem, error)
	Clear(ctx context.Context, uid int64) error
}

// PriceInvalidator drops cached latest-price snapshots after new
// observations land. A nil implementation is allowed in tests.
type PriceInvalidator interface {
	Invalidate(ctx context.Context, productIDs ...int64) error
}

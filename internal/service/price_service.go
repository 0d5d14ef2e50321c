package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/dealtrack/dealtrack_api/internal/models"
)

// PriceSnapshotCache is the read-through cache in front of the latest-offers
// query. A nil cache disables caching.
type PriceSnapshotCache interface {
	Get(ctx context.Context, productID int64) ([]models.PlatformOffer, bool, error)
	Set(ctx context.Context, productID int64, offers []models.PlatformOffer) error
}

// PriceService serves current per-platform prices and price history.
type PriceService struct {
	offers OfferStore
	cache  PriceSnapshotCache
}

// NewPriceService creates a PriceService.
func NewPriceService(offers OfferStore, cache PriceSnapshotCache) *PriceService {
	return &PriceService{offers: offers, cache: cache}
}

// Latest returns the newest observation per platform for one product,
// cheapest first. Served from cache when warm.
func (s *PriceService) Latest(ctx context.Context, pid int64) ([]models.PlatformOffer, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, pid)
		if err != nil {
			log.Warn().Err(err).Int64("pid", pid).Msg("price cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	offers, err := s.offers.LatestPerPlatform(ctx, pid)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, pid, offers); err != nil {
			log.Warn().Err(err).Int64("pid", pid).Msg("price cache write failed")
		}
	}
	return offers, nil
}

// History returns the daily lowest price of a product over the last N days,
// oldest first.
func (s *PriceService) History(ctx context.Context, pid int64, days int) ([]models.PricePoint, error) {
	return s.offers.History(ctx, pid, days)
}

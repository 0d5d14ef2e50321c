package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/dealtrack/dealtrack_api/internal/marketplace"
	"github.com/dealtrack/dealtrack_api/internal/models"
)

// RefreshService re-reads current prices for every known listing and appends
// the fresh observations. It never touches product display fields; the price
// sync owns those.
type RefreshService struct {
	adapters map[string]marketplace.Adapter
	offers   OfferStore
	cache    PriceInvalidator
}

// NewRefreshService creates a RefreshService over the given adapters, keyed
// by platform name.
func NewRefreshService(adapters []marketplace.Adapter, offers OfferStore, cache PriceInvalidator) *RefreshService {
	byPlatform := make(map[string]marketplace.Adapter, len(adapters))
	for _, a := range adapters {
		byPlatform[a.Platform()] = a
	}
	return &RefreshService{adapters: byPlatform, offers: offers, cache: cache}
}

// RefreshSummary reports the outcome of one refresh run.
type RefreshSummary struct {
	Refreshed int `json:"refreshed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// RefreshAll walks the newest stored listing reference of every (product,
// platform) pair and appends a fresh observation for each one that yields a
// positive price. Per-listing failures are counted and skipped; only context
// cancellation aborts the run.
func (s *RefreshService) RefreshAll(ctx context.Context) (*RefreshSummary, error) {
	refs, err := s.offers.ListListingRefs(ctx)
	if err != nil {
		return nil, err
	}

	log.Info().Int("listings", len(refs)).Msg("price refresh started")

	summary := &RefreshSummary{}
	touched := make(map[int64]bool)

	for _, row := range refs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		adapter, ok := s.adapters[row.Platform]
		if !ok {
			summary.Skipped++
			continue
		}

		detail, err := adapter.FetchDetail(ctx, marketplace.ListingRef{ListingID: row.ListingID, Link: row.Link})
		if err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			if errors.Is(err, marketplace.ErrNoListing) {
				summary.Skipped++
				continue
			}
			log.Warn().Err(err).
				Int64("pid", row.PID).
				Str("platform", row.Platform).
				Msg("listing refresh failed")
			summary.Failed++
			continue
		}

		if detail.Price <= 0 {
			summary.Skipped++
			continue
		}

		offer := &models.PlatformOffer{
			PID:          row.PID,
			Platform:     row.Platform,
			Price:        detail.Price,
			FreeShipping: detail.FreeShipping,
			InStock:      detail.InStock,
			ListingID:    row.ListingID,
			Link:         row.Link,
		}
		if err := s.offers.Insert(ctx, offer); err != nil {
			log.Error().Err(err).
				Int64("pid", row.PID).
				Str("platform", row.Platform).
				Msg("failed to store observation")
			summary.Failed++
			continue
		}

		summary.Refreshed++
		touched[row.PID] = true
	}

	if s.cache != nil && len(touched) > 0 {
		pids := make([]int64, 0, len(touched))
		for pid := range touched {
			pids = append(pids, pid)
		}
		if err := s.cache.Invalidate(ctx, pids...); err != nil {
			log.Warn().Err(err).Msg("price cache invalidation failed")
		}
	}

	log.Info().
		Int("refreshed", summary.Refreshed).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Msg("price refresh completed")

	return summary, nil
}

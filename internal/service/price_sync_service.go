package service

import (
	"context"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// PriceSyncService derives product display fields from the latest offer per
// platform. It is the only writer of products.price, platforms,
// free_shipping and in_stock.
type PriceSyncService struct {
	products ProductStore
	offers   OfferStore
	cache    PriceInvalidator
}

// NewPriceSyncService creates a PriceSyncService.
func NewPriceSyncService(products ProductStore, offers OfferStore, cache PriceInvalidator) *PriceSyncService {
	return &PriceSyncService{products: products, offers: offers, cache: cache}
}

// SyncSummary reports the outcome of one sync run.
type SyncSummary struct {
	Total   int `json:"total"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// SyncAll recomputes display fields for every product. Products with no
// recorded offers are left untouched. Per-product failures are logged and
// the run continues.
func (s *PriceSyncService) SyncAll(ctx context.Context) (*SyncSummary, error) {
	ids, err := s.products.ListIDs(ctx)
	if err != nil {
		return nil, err
	}

	log.Info().Int("products", len(ids)).Msg("lowest-price sync started")

	summary := &SyncSummary{Total: len(ids)}

	for _, pid := range ids {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		updated, err := s.SyncProduct(ctx, pid)
		if err != nil {
			log.Error().Err(err).Int64("pid", pid).Msg("product sync failed")
			continue
		}
		if updated {
			summary.Updated++
		} else {
			summary.Skipped++
		}
	}

	log.Info().
		Int("updated", summary.Updated).
		Int("skipped", summary.Skipped).
		Int("total", summary.Total).
		Msg("lowest-price sync completed")

	return summary, nil
}

// SyncProduct recomputes the display fields of one product from its newest
// observation per platform. The display price is the lowest of those; every
// platform tied at that price is listed, and the shipping/stock flags are
// true if any tied platform has them. Returns false when the product has no
// offers to derive from.
func (s *PriceSyncService) SyncProduct(ctx context.Context, pid int64) (bool, error) {
	latest, err := s.offers.LatestPerPlatform(ctx, pid)
	if err != nil {
		return false, err
	}
	if len(latest) == 0 {
		return false, nil
	}

	// LatestPerPlatform orders by price, so the first row is the winner.
	best := latest[0]
	platforms := pq.StringArray{}
	freeShipping := false
	inStock := false

	for _, offer := range latest {
		if offer.Price != best.Price {
			break
		}
		platforms = append(platforms, offer.Platform)
		freeShipping = freeShipping || offer.FreeShipping
		inStock = inStock || offer.InStock
	}

	if err := s.products.UpdateDisplay(ctx, pid, best.Price, platforms, freeShipping, inStock); err != nil {
		return false, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, pid); err != nil {
			log.Warn().Err(err).Int64("pid", pid).Msg("price cache invalidation failed")
		}
	}

	log.Debug().
		Int64("pid", pid).
		Float64("price", best.Price).
		Strs("platforms", platforms).
		Msg("display fields synced")

	return true, nil
}

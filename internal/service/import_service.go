package service

import (
	"context"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/dealtrack/dealtrack_api/internal/marketplace"
	"github.com/dealtrack/dealtrack_api/internal/matcher"
	"github.com/dealtrack/dealtrack_api/internal/models"
)

// ImportService bootstraps the catalog. For each seed query it creates one
// product from the top primary-marketplace result, then reconciles the
// secondary marketplaces against it and records one offer per platform that
// matched.
type ImportService struct {
	primary     marketplace.Adapter
	secondaries []marketplace.Adapter
	matcher     *matcher.Matcher
	products    ProductStore
	offers      OfferStore
}

// NewImportService creates an ImportService. The primary adapter defines
// product identity; secondaries are matched against it.
func NewImportService(primary marketplace.Adapter, secondaries []marketplace.Adapter, m *matcher.Matcher, products ProductStore, offers OfferStore) *ImportService {
	return &ImportService{
		primary:     primary,
		secondaries: secondaries,
		matcher:     m,
		products:    products,
		offers:      offers,
	}
}

// ImportedProduct summarizes one successfully imported product.
type ImportedProduct struct {
	PID        int64    `json:"pid"`
	ShortTitle string   `json:"shortTitle"`
	Price      float64  `json:"price"`
	Category   string   `json:"category"`
	Platforms  []string `json:"platforms"`
}

// ImportSummary reports the outcome of one import run.
type ImportSummary struct {
	Imported int               `json:"imported"`
	Skipped  int               `json:"skipped"`
	Failed   int               `json:"failed"`
	Products []ImportedProduct `json:"products"`
}

// Run imports one product per seed query. Failures are isolated per seed:
// a seed that errors is counted and skipped, the run continues. Only context
// cancellation aborts the whole run.
func (s *ImportService) Run(ctx context.Context, seeds []string) (*ImportSummary, error) {
	if len(seeds) == 0 {
		seeds = DefaultSeeds
	}

	summary := &ImportSummary{}

	for _, seed := range seeds {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		imported, err := s.importSeed(ctx, seed)
		if err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			log.Error().Err(err).Str("seed", seed).Msg("seed import failed")
			summary.Failed++
			continue
		}
		if imported == nil {
			log.Info().Str("seed", seed).Msg("seed skipped, no usable primary result")
			summary.Skipped++
			continue
		}

		summary.Imported++
		summary.Products = append(summary.Products, *imported)
	}

	log.Info().
		Int("imported", summary.Imported).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Msg("import run completed")

	return summary, nil
}

// importSeed handles one seed query. Returns (nil, nil) when the primary
// marketplace has no usable result for it.
func (s *ImportService) importSeed(ctx context.Context, seed string) (*ImportedProduct, error) {
	results, err := s.primary.Search(ctx, seed)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	top := results[0]
	if top.Price <= 0 {
		return nil, nil
	}

	shortTitle := matcher.ShortTitle(top.Title)

	product := &models.Product{
		ShortTitle:   shortTitle,
		Title:        top.Title,
		Price:        top.Price,
		Platforms:    pq.StringArray{s.primary.Platform()},
		FreeShipping: top.FreeShipping,
		InStock:      top.InStock,
		Information:  top.Information,
		ImageURL:     top.ImageURL,
	}
	if top.Extra != nil {
		product.Rating = top.Extra.Rating
		product.Category = top.Extra.Category
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	if err := s.offers.Insert(ctx, offerFromRaw(product.PID, top)); err != nil {
		return nil, err
	}

	log.Info().
		Int64("pid", product.PID).
		Str("short_title", shortTitle).
		Float64("price", top.Price).
		Msg("product created")

	platforms := []string{s.primary.Platform()}
	ref := matcher.Reference{Title: top.Title, Price: top.Price}

	for _, adapter := range s.secondaries {
		candidates, err := adapter.Search(ctx, shortTitle)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn().Err(err).
				Str("platform", adapter.Platform()).
				Int64("pid", product.PID).
				Msg("secondary search failed")
			continue
		}

		match, err := s.matcher.BestMatch(ctx, ref, candidates, adapter.PriceBand())
		if err != nil {
			log.Warn().Err(err).
				Str("platform", adapter.Platform()).
				Int64("pid", product.PID).
				Msg("matching failed")
			continue
		}
		if match == nil || match.Offer.Price <= 0 {
			continue
		}

		if err := s.offers.Insert(ctx, offerFromRaw(product.PID, match.Offer)); err != nil {
			return nil, err
		}

		log.Info().
			Int64("pid", product.PID).
			Str("platform", adapter.Platform()).
			Float64("price", match.Offer.Price).
			Float64("score", match.Score).
			Msg("secondary offer recorded")

		platforms = append(platforms, adapter.Platform())
	}

	return &ImportedProduct{
		PID:        product.PID,
		ShortTitle: shortTitle,
		Price:      top.Price,
		Category:   product.Category,
		Platforms:  platforms,
	}, nil
}

func offerFromRaw(pid int64, raw marketplace.RawOffer) *models.PlatformOffer {
	return &models.PlatformOffer{
		PID:          pid,
		Platform:     raw.Platform,
		Price:        raw.Price,
		FreeShipping: raw.FreeShipping,
		InStock:      raw.InStock,
		ListingID:    raw.ListingID,
		Link:         raw.Link,
	}
}

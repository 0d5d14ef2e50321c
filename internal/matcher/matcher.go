package matcher

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/dealtrack/dealtrack_api/internal/marketplace"
)

// topMargin is how far below the best similarity score a candidate may sit
// and still count as an equally good match. Ties inside the margin go to the
// cheapest offer.
const topMargin = 0.05

// Scorer rates how likely two listing titles describe the same product, in
// [0, 1].
type Scorer interface {
	Score(ctx context.Context, titleA, titleB string) (float64, error)
}

// Reference is the product a secondary-marketplace listing is matched
// against.
type Reference struct {
	Title string
	Price float64
}

// Match is a chosen candidate with its similarity score.
type Match struct {
	Offer marketplace.RawOffer
	Score float64
}

// Matcher selects the best secondary-marketplace listing for a reference
// product.
type Matcher struct {
	scorer Scorer
}

// New returns a Matcher backed by the given scorer.
func New(scorer Scorer) *Matcher {
	return &Matcher{scorer: scorer}
}

// BestMatch picks the candidate most likely to be the same product as ref.
//
// Candidates are narrowed in two soft passes before scoring: listings that
// look used are dropped when the reference is new, then listings priced
// outside the platform band around the reference price are dropped. Either
// pass is skipped entirely when it would leave no candidates. The survivors
// are scored; all candidates within topMargin of the best score are
// considered equal and the cheapest of them wins.
//
// Returns nil when candidates is empty or every candidate fails to score.
func (m *Matcher) BestMatch(ctx context.Context, ref Reference, candidates []marketplace.RawOffer, band marketplace.PriceBand) (*Match, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	pool := candidates

	if !IsUsed(ref.Title) {
		var fresh []marketplace.RawOffer
		for _, c := range pool {
			if IsUsed(c.Title) || IsUsedCondition(c.Condition) {
				continue
			}
			fresh = append(fresh, c)
		}
		if len(fresh) > 0 {
			pool = fresh
		}
	}

	if ref.Price > 0 {
		var inBand []marketplace.RawOffer
		for _, c := range pool {
			if band.Contains(ref.Price, c.Price) {
				inBand = append(inBand, c)
			}
		}
		if len(inBand) > 0 {
			pool = inBand
		}
	}

	var scored []Match
	var lastErr error
	for _, c := range pool {
		score, err := m.scorer.Score(ctx, ref.Title, c.Title)
		if err != nil {
			lastErr = err
			log.Warn().Err(err).Str("title", c.Title).Msg("similarity scoring failed, skipping candidate")
			continue
		}
		scored = append(scored, Match{Offer: c, Score: score})
	}
	if len(scored) == 0 {
		return nil, lastErr
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	top := scored[0].Score
	cutoff := 0
	for cutoff < len(scored) && scored[cutoff].Score >= top-topMargin {
		cutoff++
	}
	topMatches := scored[:cutoff]

	sort.SliceStable(topMatches, func(i, j int) bool {
		return topMatches[i].Offer.Price < topMatches[j].Offer.Price
	})

	best := topMatches[0]
	log.Debug().
		Str("title", best.Offer.Title).
		Float64("score", best.Score).
		Float64("price", best.Offer.Price).
		Msg("best match selected")

	return &best, nil
}

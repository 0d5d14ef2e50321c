package matcher

import (
	"context"

	"github.com/dealtrack/dealtrack_api/internal/throttle"
)

// ThrottledScorer spaces out calls to an external scorer. Scoring hosts are
// rate limited the same way the marketplace APIs are, so every scoring call
// passes a gate before going out.
type ThrottledScorer struct {
	scorer Scorer
	gate   *throttle.Gate
}

// NewThrottledScorer wraps a scorer behind a throttle gate.
func NewThrottledScorer(scorer Scorer, gate *throttle.Gate) *ThrottledScorer {
	return &ThrottledScorer{scorer: scorer, gate: gate}
}

// Score implements Scorer.
func (t *ThrottledScorer) Score(ctx context.Context, titleA, titleB string) (float64, error) {
	if err := t.gate.Wait(ctx); err != nil {
		return 0, err
	}
	return t.scorer.Score(ctx, titleA, titleB)
}

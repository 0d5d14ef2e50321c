package matcher

import (
	"context"
	"errors"
	"testing"

	"github.com/dealtrack/dealtrack_api/internal/marketplace"
)

// stubScorer returns a fixed score per candidate title.
type stubScorer struct {
	scores map[string]float64
	err    error
}

func (s *stubScorer) Score(_ context.Context, _, titleB string) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.scores[titleB], nil
}

func TestBestMatchEmptyCandidates(t *testing.T) {
	m := New(&stubScorer{})
	match, err := m.BestMatch(context.Background(), Reference{Title: "x", Price: 100}, nil, marketplace.PriceBand{})
	if err != nil {
		t.Fatalf("BestMatch returned error: %v", err)
	}
	if match != nil {
		t.Fatalf("BestMatch = %+v, want nil", match)
	}
}

func TestBestMatchBandExcludesOutliersAndScorePicksWinner(t *testing.T) {
	ref := Reference{Title: "Sony WH-1000XM5 Wireless Headphones", Price: 199}
	candidates := []marketplace.RawOffer{
		{Title: "Sony WH-CH720N Headphones", Price: 420},
		{Title: "Sony WH-1000XM5 Noise Cancelling Headphones", Price: 205},
		{Title: "Sony WH-1000XM5 Gold Plated Collector Edition", Price: 610},
	}
	scorer := &stubScorer{scores: map[string]float64{
		"Sony WH-CH720N Headphones":                     0.40,
		"Sony WH-1000XM5 Noise Cancelling Headphones":   0.95,
		"Sony WH-1000XM5 Gold Plated Collector Edition": 0.99,
	}}

	// Band of 0.3x to 2.5x around 199 keeps 420 and 205, drops 610.
	m := New(scorer)
	match, err := m.BestMatch(context.Background(), ref, candidates, marketplace.PriceBand{Lower: 0.3, Upper: 2.5})
	if err != nil {
		t.Fatalf("BestMatch returned error: %v", err)
	}
	if match == nil {
		t.Fatal("BestMatch returned nil")
	}
	if match.Offer.Price != 205 {
		t.Fatalf("matched price = %v, want 205", match.Offer.Price)
	}
	if match.Score != 0.95 {
		t.Fatalf("matched score = %v, want 0.95", match.Score)
	}
}

func TestBestMatchCheapestWinsInsideMargin(t *testing.T) {
	ref := Reference{Title: "ref", Price: 100}
	candidates := []marketplace.RawOffer{
		{Title: "a", Price: 110},
		{Title: "b", Price: 95},
		{Title: "c", Price: 130},
	}
	// All three within topMargin of the best score; the cheapest must win.
	scorer := &stubScorer{scores: map[string]float64{"a": 0.92, "b": 0.89, "c": 0.90}}

	m := New(scorer)
	match, err := m.BestMatch(context.Background(), ref, candidates, marketplace.PriceBand{})
	if err != nil {
		t.Fatalf("BestMatch returned error: %v", err)
	}
	if match == nil || match.Offer.Title != "b" {
		t.Fatalf("BestMatch = %+v, want candidate b", match)
	}
}

func TestBestMatchOutsideMarginLoses(t *testing.T) {
	ref := Reference{Title: "ref", Price: 100}
	candidates := []marketplace.RawOffer{
		{Title: "a", Price: 150},
		{Title: "b", Price: 50},
	}
	// b is cheaper but more than topMargin below a's score.
	scorer := &stubScorer{scores: map[string]float64{"a": 0.95, "b": 0.80}}

	m := New(scorer)
	match, err := m.BestMatch(context.Background(), ref, candidates, marketplace.PriceBand{})
	if err != nil {
		t.Fatalf("BestMatch returned error: %v", err)
	}
	if match == nil || match.Offer.Title != "a" {
		t.Fatalf("BestMatch = %+v, want candidate a", match)
	}
}

func TestBestMatchFiltersUsedListings(t *testing.T) {
	ref := Reference{Title: "Apple iPad Air", Price: 500}
	candidates := []marketplace.RawOffer{
		{Title: "Apple iPad Air (Renewed)", Price: 300},
		{Title: "Apple iPad Air", Price: 520, Condition: "New"},
		{Title: "Apple iPad Air", Price: 310, Condition: "Used"},
	}
	scorer := &stubScorer{scores: map[string]float64{
		"Apple iPad Air (Renewed)": 0.99,
		"Apple iPad Air":           0.99,
	}}

	m := New(scorer)
	match, err := m.BestMatch(context.Background(), ref, candidates, marketplace.PriceBand{})
	if err != nil {
		t.Fatalf("BestMatch returned error: %v", err)
	}
	if match == nil || match.Offer.Price != 520 {
		t.Fatalf("BestMatch = %+v, want the new listing at 520", match)
	}
}

func TestBestMatchUsedFilterSkippedWhenPoolWouldEmpty(t *testing.T) {
	ref := Reference{Title: "Apple iPad Air", Price: 500}
	candidates := []marketplace.RawOffer{
		{Title: "Apple iPad Air (Renewed)", Price: 300},
	}
	scorer := &stubScorer{scores: map[string]float64{"Apple iPad Air (Renewed)": 0.9}}

	m := New(scorer)
	match, err := m.BestMatch(context.Background(), ref, candidates, marketplace.PriceBand{})
	if err != nil {
		t.Fatalf("BestMatch returned error: %v", err)
	}
	if match == nil || match.Offer.Price != 300 {
		t.Fatalf("BestMatch = %+v, want the only candidate", match)
	}
}

func TestBestMatchBandSkippedWhenPoolWouldEmpty(t *testing.T) {
	ref := Reference{Title: "ref", Price: 100}
	candidates := []marketplace.RawOffer{
		{Title: "a", Price: 900},
	}
	scorer := &stubScorer{scores: map[string]float64{"a": 0.9}}

	m := New(scorer)
	match, err := m.BestMatch(context.Background(), ref, candidates, marketplace.PriceBand{Lower: 0.3, Upper: 2.5})
	if err != nil {
		t.Fatalf("BestMatch returned error: %v", err)
	}
	if match == nil || match.Offer.Price != 900 {
		t.Fatalf("BestMatch = %+v, want the only candidate", match)
	}
}

func TestBestMatchAllScoresFail(t *testing.T) {
	wantErr := errors.New("oracle down")
	m := New(&stubScorer{err: wantErr})
	candidates := []marketplace.RawOffer{{Title: "a", Price: 10}}

	match, err := m.BestMatch(context.Background(), Reference{Title: "ref", Price: 10}, candidates, marketplace.PriceBand{})
	if !errors.Is(err, wantErr) {
		t.Fatalf("BestMatch error = %v, want %v", err, wantErr)
	}
	if match != nil {
		t.Fatalf("BestMatch = %+v, want nil", match)
	}
}

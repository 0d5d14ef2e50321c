package matcher

import (
	"context"
	"testing"
)

func TestHeuristicScoreIdenticalTitles(t *testing.T) {
	s := NewHeuristicScorer()
	got, err := s.Score(context.Background(), "Apple iPhone 14 Pro 128GB Black", "Apple iPhone 14 Pro 128GB Black")
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if got != 1.0 {
		t.Fatalf("Score = %v, want 1.0", got)
	}
}

func TestHeuristicScoreEquivalentVariants(t *testing.T) {
	// Same product, different marketplace phrasing.
	s := NewHeuristicScorer()
	got, err := s.Score(context.Background(),
		"Apple iPhone 14 Pro, 128GB, Black - Unlocked",
		"Apple iPhone 14 Pro 128GB Black")
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if got < 0.9 {
		t.Fatalf("Score = %v, want >= 0.9 for the same product", got)
	}
}

func TestHeuristicScoreDifferentProducts(t *testing.T) {
	s := NewHeuristicScorer()
	got, err := s.Score(context.Background(),
		"Apple iPhone 14 Pro 128GB Black",
		"Samsung Galaxy S23 Ultra 256GB Green")
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if got >= 0.5 {
		t.Fatalf("Score = %v, want < 0.5 for unrelated products", got)
	}
}

func TestHeuristicScoreEmptyTitle(t *testing.T) {
	s := NewHeuristicScorer()
	got, err := s.Score(context.Background(), "", "Apple iPhone 14 Pro")
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if got != 0 {
		t.Fatalf("Score = %v, want 0 for an empty title", got)
	}
}

func TestHeuristicScoreOrdersByRelevance(t *testing.T) {
	s := NewHeuristicScorer()
	ref := "Apple iPhone 14 Pro 128GB Black"
	closer, err := s.Score(context.Background(), ref, "Apple iPhone 14 Pro 128GB Space Gray")
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	farther, err := s.Score(context.Background(), ref, "Apple iPhone 12 64GB White")
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if closer <= farther {
		t.Fatalf("closer variant scored %v, farther %v; want closer > farther", closer, farther)
	}
}

func TestCompareModels(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"iphone 14 pro", "iphone 14 pro", 1.0},
		{"iphone 14pro", "iphone 14 pro", 0.95},
	}
	for _, tt := range tests {
		if got := compareModels(tt.a, tt.b); got != tt.want {
			t.Errorf("compareModels(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
	if got := compareModels("iphone 14", "iphone 13"); got >= 0.95 || got <= 0 {
		t.Errorf("compareModels near-miss = %v, want in (0, 0.95)", got)
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"same", "same", 0},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

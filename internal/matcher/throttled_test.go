package matcher

import (
	"context"
	"testing"
	"time"

	"github.com/dealtrack/dealtrack_api/internal/throttle"
)

type countingScorer struct {
	calls int
	score float64
}

func (s *countingScorer) Score(ctx context.Context, titleA, titleB string) (float64, error) {
	s.calls++
	return s.score, nil
}

func TestThrottledScorerDelegates(t *testing.T) {
	inner := &countingScorer{score: 0.8}
	ts := NewThrottledScorer(inner, throttle.NewGate(0))

	got, err := ts.Score(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if got != 0.8 {
		t.Errorf("Score = %v, want 0.8", got)
	}
	if inner.calls != 1 {
		t.Errorf("inner scorer called %d times, want 1", inner.calls)
	}
}

func TestThrottledScorerSpacesCalls(t *testing.T) {
	inner := &countingScorer{score: 0.5}
	ts := NewThrottledScorer(inner, throttle.NewGate(40*time.Millisecond))

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := ts.Score(context.Background(), "a", "b"); err != nil {
			t.Fatalf("Score %d returned error: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("3 scoring calls took %v, want at least 80ms of spacing", elapsed)
	}
	if inner.calls != 3 {
		t.Errorf("inner scorer called %d times, want 3", inner.calls)
	}
}

func TestThrottledScorerHonorsContext(t *testing.T) {
	inner := &countingScorer{score: 0.5}
	ts := NewThrottledScorer(inner, throttle.NewGate(time.Hour))

	// First call goes through immediately and occupies the slot.
	if _, err := ts.Score(context.Background(), "a", "b"); err != nil {
		t.Fatalf("first Score returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ts.Score(ctx, "a", "b"); err != context.Canceled {
		t.Fatalf("Score with canceled context = %v, want context.Canceled", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner scorer called %d times after cancellation, want 1", inner.calls)
	}
}

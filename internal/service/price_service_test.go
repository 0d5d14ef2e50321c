package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dealtrack/dealtrack_api/internal/models"
)

// fakeSnapshotCache is an in-memory PriceSnapshotCache.
type fakeSnapshotCache struct {
	snapshots map[int64][]models.PlatformOffer
	getErr    error

	hits, misses, writes int
}

func newFakeSnapshotCache() *fakeSnapshotCache {
	return &fakeSnapshotCache{snapshots: make(map[int64][]models.PlatformOffer)}
}

func (f *fakeSnapshotCache) Get(_ context.Context, pid int64) ([]models.PlatformOffer, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	s, ok := f.snapshots[pid]
	if ok {
		f.hits++
	} else {
		f.misses++
	}
	return s, ok, nil
}

func (f *fakeSnapshotCache) Set(_ context.Context, pid int64, offers []models.PlatformOffer) error {
	f.writes++
	f.snapshots[pid] = offers
	return nil
}

func TestLatestReadsThroughCache(t *testing.T) {
	offers := newFakeOfferStore()
	offers.latest[1] = []models.PlatformOffer{
		{PID: 1, Platform: models.PlatformWalmart, Price: 298},
	}
	cache := newFakeSnapshotCache()
	svc := NewPriceService(offers, cache)
	ctx := context.Background()

	first, err := svc.Latest(ctx, 1)
	if err != nil {
		t.Fatalf("Latest returned error: %v", err)
	}
	if len(first) != 1 || first[0].Price != 298 {
		t.Fatalf("Latest = %+v", first)
	}
	if cache.misses != 1 || cache.writes != 1 {
		t.Fatalf("cache misses/writes = %d/%d, want 1/1", cache.misses, cache.writes)
	}

	if _, err := svc.Latest(ctx, 1); err != nil {
		t.Fatalf("second Latest returned error: %v", err)
	}
	if cache.hits != 1 {
		t.Fatalf("cache hits = %d, want the second read served warm", cache.hits)
	}
}

func TestLatestSurvivesCacheFailure(t *testing.T) {
	offers := newFakeOfferStore()
	offers.latest[1] = []models.PlatformOffer{
		{PID: 1, Platform: models.PlatformAmazon, Price: 348},
	}
	cache := newFakeSnapshotCache()
	cache.getErr = errors.New("redis down")

	svc := NewPriceService(offers, cache)
	got, err := svc.Latest(context.Background(), 1)
	if err != nil {
		t.Fatalf("Latest returned error: %v", err)
	}
	if len(got) != 1 || got[0].Price != 348 {
		t.Fatalf("Latest = %+v, want the store result despite the cache failure", got)
	}
}

func TestLatestNilCache(t *testing.T) {
	offers := newFakeOfferStore()
	svc := NewPriceService(offers, nil)
	if _, err := svc.Latest(context.Background(), 1); err != nil {
		t.Fatalf("Latest with nil cache returned error: %v", err)
	}
}

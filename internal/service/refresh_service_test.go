package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dealtrack/dealtrack_api/internal/marketplace"
	"github.com/dealtrack/dealtrack_api/internal/models"
	"github.com/dealtrack/dealtrack_api/internal/repository"
)

func TestRefreshAllAppendsObservations(t *testing.T) {
	amazon := &fakeAdapter{
		platform: models.PlatformAmazon,
		details: map[string]*marketplace.Detail{
			"B0TEST1234": {Price: 329, InStock: true, FreeShipping: true},
		},
	}
	offers := newFakeOfferStore()
	offers.refs = []repository.ListingRow{
		{PID: 1, Platform: models.PlatformAmazon, ListingID: "B0TEST1234", Link: "https://www.amazon.com/dp/B0TEST1234"},
	}
	cache := &fakeInvalidator{}

	svc := NewRefreshService([]marketplace.Adapter{amazon}, offers, cache)
	summary, err := svc.RefreshAll(context.Background())
	if err != nil {
		t.Fatalf("RefreshAll returned error: %v", err)
	}

	if summary.Refreshed != 1 {
		t.Fatalf("summary = %+v, want 1 refreshed", summary)
	}
	if len(offers.inserted) != 1 {
		t.Fatalf("inserted %d observations, want 1", len(offers.inserted))
	}
	got := offers.inserted[0]
	if got.PID != 1 || got.Price != 329 || !got.InStock || !got.FreeShipping {
		t.Errorf("observation = %+v", got)
	}
	if got.ListingID != "B0TEST1234" {
		t.Errorf("ListingID = %q, want carried over from the reference", got.ListingID)
	}
	if len(cache.pids) != 1 || cache.pids[0] != 1 {
		t.Errorf("cache invalidated for %v, want [1]", cache.pids)
	}
}

func TestRefreshAllSkipsMissingListingAndAdapter(t *testing.T) {
	amazon := &fakeAdapter{platform: models.PlatformAmazon, details: map[string]*marketplace.Detail{}}
	offers := newFakeOfferStore()
	offers.refs = []repository.ListingRow{
		{PID: 1, Platform: models.PlatformAmazon, ListingID: "GONE"},
		{PID: 2, Platform: "Target", ListingID: "123"},
	}

	svc := NewRefreshService([]marketplace.Adapter{amazon}, offers, nil)
	summary, err := svc.RefreshAll(context.Background())
	if err != nil {
		t.Fatalf("RefreshAll returned error: %v", err)
	}
	if summary.Skipped != 2 || summary.Refreshed != 0 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, want 2 skipped", summary)
	}
	if len(offers.inserted) != 0 {
		t.Fatal("nothing should be inserted for skipped listings")
	}
}

func TestRefreshAllCountsFailuresAndContinues(t *testing.T) {
	amazon := &fakeAdapter{
		platform:  models.PlatformAmazon,
		detailErr: errors.New("upstream 500"),
	}
	walmart := &fakeAdapter{
		platform: models.PlatformWalmart,
		details: map[string]*marketplace.Detail{
			"987": {Price: 19.99, InStock: true, FreeShipping: true},
		},
	}
	offers := newFakeOfferStore()
	offers.refs = []repository.ListingRow{
		{PID: 1, Platform: models.PlatformAmazon, ListingID: "B0TEST1234"},
		{PID: 2, Platform: models.PlatformWalmart, ListingID: "987"},
	}

	svc := NewRefreshService([]marketplace.Adapter{amazon, walmart}, offers, nil)
	summary, err := svc.RefreshAll(context.Background())
	if err != nil {
		t.Fatalf("RefreshAll returned error: %v", err)
	}
	if summary.Failed != 1 || summary.Refreshed != 1 {
		t.Fatalf("summary = %+v, want 1 failed and 1 refreshed", summary)
	}
}

func TestRefreshAllSkipsZeroPriceDetail(t *testing.T) {
	amazon := &fakeAdapter{
		platform: models.PlatformAmazon,
		details: map[string]*marketplace.Detail{
			"B0TEST1234": {Price: 0, InStock: false},
		},
	}
	offers := newFakeOfferStore()
	offers.refs = []repository.ListingRow{
		{PID: 1, Platform: models.PlatformAmazon, ListingID: "B0TEST1234"},
	}

	svc := NewRefreshService([]marketplace.Adapter{amazon}, offers, nil)
	summary, err := svc.RefreshAll(context.Background())
	if err != nil {
		t.Fatalf("RefreshAll returned error: %v", err)
	}
	if summary.Skipped != 1 || len(offers.inserted) != 0 {
		t.Fatalf("summary = %+v with %d inserts, want the zero price skipped", summary, len(offers.inserted))
	}
}

package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/lib/pq"

	"github.com/dealtrack/dealtrack_api/internal/marketplace"
	"github.com/dealtrack/dealtrack_api/internal/models"
	"github.com/dealtrack/dealtrack_api/internal/repository"
)

// fakeAdapter is a canned marketplace.Adapter.
type fakeAdapter struct {
	platform  string
	results   []marketplace.RawOffer
	searchErr error
	details   map[string]*marketplace.Detail
	detailErr error
	band      marketplace.PriceBand
}

func (f *fakeAdapter) Platform() string { return f.platform }

func (f *fakeAdapter) Search(_ context.Context, _ string) ([]marketplace.RawOffer, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results, nil
}

func (f *fakeAdapter) FetchDetail(_ context.Context, ref marketplace.ListingRef) (*marketplace.Detail, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	d, ok := f.details[ref.ListingID]
	if !ok {
		return nil, marketplace.ErrNoListing
	}
	return d, nil
}

func (f *fakeAdapter) PriceBand() marketplace.PriceBand { return f.band }

// fakeProductStore keeps products in memory.
type fakeProductStore struct {
	nextPID  int64
	products map[int64]*models.Product

	displayUpdates map[int64]displayUpdate
	createErr      error
}

type displayUpdate struct {
	price        float64
	platforms    pq.StringArray
	freeShipping bool
	inStock      bool
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{
		products:       make(map[int64]*models.Product),
		displayUpdates: make(map[int64]displayUpdate),
	}
}

func (f *fakeProductStore) Create(_ context.Context, p *models.Product) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextPID++
	p.PID = f.nextPID
	cp := *p
	f.products[p.PID] = &cp
	return nil
}

func (f *fakeProductStore) GetByID(_ context.Context, pid int64) (*models.Product, error) {
	p, ok := f.products[pid]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func (f *fakeProductStore) List(_ context.Context, _ repository.ProductFilter) ([]models.Product, error) {
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out, nil
}

func (f *fakeProductStore) ListIDs(_ context.Context) ([]int64, error) {
	ids := make([]int64, 0, len(f.products))
	for pid := range f.products {
		ids = append(ids, pid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeProductStore) UpdateDisplay(_ context.Context, pid int64, price float64, platforms pq.StringArray, freeShipping, inStock bool) error {
	f.displayUpdates[pid] = displayUpdate{price: price, platforms: platforms, freeShipping: freeShipping, inStock: inStock}
	if p, ok := f.products[pid]; ok {
		p.Price = price
		p.Platforms = platforms
		p.FreeShipping = freeShipping
		p.InStock = inStock
	}
	return nil
}

func (f *fakeProductStore) Categories(_ context.Context) ([]string, error) {
	return nil, nil
}

// fakeOfferStore records inserted observations and serves canned reads.
type fakeOfferStore struct {
	inserted []models.PlatformOffer

	latest  map[int64][]models.PlatformOffer
	refs    []repository.ListingRow
	history []models.PricePoint

	insertErr error
}

func newFakeOfferStore() *fakeOfferStore {
	return &fakeOfferStore{latest: make(map[int64][]models.PlatformOffer)}
}

func (f *fakeOfferStore) Insert(_ context.Context, o *models.PlatformOffer) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	o.ID = int64(len(f.inserted) + 1)
	f.inserted = append(f.inserted, *o)
	return nil
}

func (f *fakeOfferStore) LatestPerPlatform(_ context.Context, pid int64) ([]models.PlatformOffer, error) {
	return f.latest[pid], nil
}

func (f *fakeOfferStore) ListListingRefs(_ context.Context) ([]repository.ListingRow, error) {
	return f.refs, nil
}

func (f *fakeOfferStore) History(_ context.Context, _ int64, _ int) ([]models.PricePoint, error) {
	return f.history, nil
}

// fakeWishlistStore serves canned wishlist items and records state changes.
type fakeWishlistStore struct {
	items []models.WishlistItem

	notified    []int64
	notifyErr   error
	ackErr      error
	rearmed     int64
	rearmErr    error
	upsertCalls int
}

func (f *fakeWishlistStore) Upsert(_ context.Context, _, _ int64, _ *float64) error {
	f.upsertCalls++
	return nil
}

func (f *fakeWishlistStore) Delete(_ context.Context, _, _ int64) error { return nil }

func (f *fakeWishlistStore) Get(_ context.Context, _, _ int64) (*models.WishlistEntry, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeWishlistStore) ListForUser(_ context.Context, _ int64) ([]models.WishlistItem, error) {
	return f.items, nil
}

func (f *fakeWishlistStore) MarkNotified(_ context.Context, _, pid int64, _ time.Time) error {
	if f.notifyErr != nil {
		return f.notifyErr
	}
	f.notified = append(f.notified, pid)
	return nil
}

func (f *fakeWishlistStore) Acknowledge(_ context.Context, _, _ int64) error { return f.ackErr }

func (f *fakeWishlistStore) ResetBelowTarget(_ context.Context) (int64, error) {
	return f.rearmed, f.rearmErr
}

// fakeInvalidator records cache invalidations.
type fakeInvalidator struct {
	pids []int64
	err  error
}

func (f *fakeInvalidator) Invalidate(_ context.Context, productIDs ...int64) error {
	if f.err != nil {
		return f.err
	}
	f.pids = append(f.pids, productIDs...)
	return nil
}

func fptr(v float64) *float64 { return &v }

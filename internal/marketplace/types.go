// Package marketplace defines the adapter boundary between the tracker and
// the external marketplace APIs, plus the three concrete adapters.
package marketplace

import (
	"context"
	"errors"
)

// ErrNoListing is returned by FetchDetail when a stored reference carries no
// usable listing id for the platform.
var ErrNoListing = errors.New("no usable listing reference")

// RawOffer is a normalized search result from any marketplace.
type RawOffer struct {
	Platform     string
	Title        string
	Price        float64
	FreeShipping bool
	InStock      bool
	Condition    string
	Information  string
	ImageURL     string
	ListingID    string
	Link         string
	Extra        *ProductInfo
}

// ProductInfo carries catalog attributes only the primary marketplace
// provides. Used when a search result seeds a new product.
type ProductInfo struct {
	Rating   float64
	Category string
}

// Detail is a fresh price observation for one known listing.
type Detail struct {
	Price        float64
	InStock      bool
	FreeShipping bool
}

// ListingRef identifies a previously recorded listing on one platform.
type ListingRef struct {
	ListingID string
	Link      string
}

// PriceBand bounds candidate prices relative to a reference price. The zero
// value accepts any price.
type PriceBand struct {
	Lower float64
	Upper float64
}

// Contains reports whether price falls within the band around ref.
func (b PriceBand) Contains(ref, price float64) bool {
	if b.Lower == 0 && b.Upper == 0 {
		return true
	}
	return price >= ref*b.Lower && price <= ref*b.Upper
}

// Adapter is the per-platform integration surface. Implementations wrap one
// marketplace client and normalize its payloads.
type Adapter interface {
	// Platform returns the canonical platform name.
	Platform() string
	// Search returns normalized offers for a text query.
	Search(ctx context.Context, query string) ([]RawOffer, error)
	// FetchDetail re-reads price and stock for a known listing.
	FetchDetail(ctx context.Context, ref ListingRef) (*Detail, error)
	// PriceBand returns the plausibility band used when matching this
	// platform's results against a reference price.
	PriceBand() PriceBand
}

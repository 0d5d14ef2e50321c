package models

import "time"

// Platform names for the three supported marketplaces.
const (
	PlatformAmazon  = "Amazon"
	PlatformEbay    = "eBay"
	PlatformWalmart = "Walmart"
)

// PlatformOffer is one immutable price/availability observation for a product
// on one marketplace at one point in time. Rows are append-only: a fresh
// observation is always a new row, never an update, so the full price history
// stays available for charting.
type PlatformOffer struct {
	ID           int64     `db:"id" json:"id"`
	PID          int64     `db:"pid" json:"pid"`
	Platform     string    `db:"platform" json:"platform"`
	Price        float64   `db:"price" json:"price"`
	FreeShipping bool      `db:"free_shipping" json:"freeShipping"`
	InStock      bool      `db:"in_stock" json:"inStock"`
	ObservedAt   time.Time `db:"observed_at" json:"observedAt"`
	ListingID    string    `db:"listing_id" json:"listingId,omitempty"`
	Link         string    `db:"link" json:"link,omitempty"`
}

// PricePoint is one entry of a product's daily price history.
type PricePoint struct {
	Date  string  `db:"date" json:"date"`
	Price float64 `db:"price" json:"price"`
}

package models

import (
	"time"

	"github.com/lib/pq"
)

// Product is one canonical tracked item, independent of which marketplace it
// was discovered on. The display fields (Price, Platforms, FreeShipping,
// InStock) are derived from the latest offer per platform and are written
// only by the lowest-price sync; pipelines never touch them directly.
type Product struct {
	PID        int64  `db:"pid" json:"pid"`
	ShortTitle string `db:"short_title" json:"shortTitle"`
	Title      string `db:"title" json:"title"`

	// Derived display fields, owned by PriceSyncService.
	Price        float64        `db:"price" json:"price"`
	Platforms    pq.StringArray `db:"platforms" json:"platforms"`
	FreeShipping bool           `db:"free_shipping" json:"freeShipping"`
	InStock      bool           `db:"in_stock" json:"inStock"`

	Rating      float64   `db:"rating" json:"rating"`
	Information string    `db:"information" json:"information"`
	Category    string    `db:"category" json:"category"`
	ImageURL    string    `db:"image_url" json:"imageUrl"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

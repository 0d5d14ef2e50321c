package walmart

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Price decodes from either a JSON number or a numeric string, tolerating
// currency symbols and thousands separators. Unparseable values decode to 0.
type Price float64

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(string(b), `"`))
	s = strings.NewReplacer("$", "", ",", "").Replace(s)
	if s == "" || s == "null" {
		*p = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*p = 0
		return nil
	}
	*p = Price(f)
	return nil
}

// ID decodes from either a JSON number or a string.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	*id = ID(strings.Trim(string(b), `"`))
	return nil
}

// SearchResponse wraps the Walmart search endpoint payload. The searchResult
// field arrives as a jagged array of product groups, so it is kept raw and
// flattened by the client.
type SearchResponse struct {
	SearchResult []json.RawMessage `json:"searchResult"`
}

// Product is one raw Walmart search result after flattening.
type Product struct {
	ItemID          ID            `json:"itemId"`
	UsItemID        ID            `json:"usItemId"`
	Name            string        `json:"name"`
	Title           string        `json:"title"`
	Brand           string        `json:"brand"`
	Price           Price         `json:"price"`
	PrimaryOffer    *PrimaryOffer `json:"primaryOffer"`
	Rating          Price         `json:"rating"`
	NumberOfReviews ID            `json:"numberOfReviews"`
	ProductPageURL  string        `json:"productPageUrl"`
	CanonicalURL    string        `json:"canonicalUrl"`
	Image           string        `json:"image"`
	ImageInfo       *ImageInfo    `json:"imageInfo"`
}

// PrimaryOffer carries the active offer for a listing.
type PrimaryOffer struct {
	OfferType  string `json:"offerType"`
	OfferPrice Price  `json:"offerPrice"`
	MinPrice   Price  `json:"minPrice"`
}

// ImageInfo holds product image URLs.
type ImageInfo struct {
	ThumbnailURL string `json:"thumbnailUrl"`
}

// Detail is the raw detail payload for one item id.
type Detail struct {
	ItemID       ID     `json:"itemId"`
	Name         string `json:"name"`
	Price        Price  `json:"price"`
	Availability string `json:"availability"`
	CanonicalURL string `json:"canonicalUrl"`
}

package ebay

import (
	"bytes"
	"strconv"
	"strings"
)

// Number decodes from either a JSON number or a numeric string. Unparseable
// values decode to 0.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(string(b), `"`))
	s = strings.NewReplacer("$", "", ",", "").Replace(s)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = Number(f)
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

// SearchResponse wraps the eBay search endpoint payload.
type SearchResponse struct {
	Status string     `json:"status"`
	Data   SearchData `json:"data"`
}

// SearchData holds the item list of a search response.
type SearchData struct {
	Items []Item `json:"items"`
}

// Item is one raw eBay search result. Total is the item price plus shipping.
type Item struct {
	ItemID       ID     `json:"itemId"`
	Title        string `json:"title"`
	Price        Number `json:"price"`
	Shipping     Number `json:"shipping"`
	Total        Number `json:"total"`
	Condition    string `json:"condition"`
	BidCount     Number `json:"bid-count"`
	TimeLeft     string `json:"time-left"`
	DeliveryDate string `json:"delivery-date"`
	URL          string `json:"url"`
	ImageURL     string `json:"imageUrl"`
}

// DetailResponse wraps the item-details endpoint payload.
type DetailResponse struct {
	Status string     `json:"status"`
	Data   ItemDetail `json:"data"`
}

// ItemDetail is the raw detail payload for one listing.
type ItemDetail struct {
	ItemID       ID     `json:"itemId"`
	Title        string `json:"title"`
	Price        Money  `json:"price"`
	ShippingCost Money  `json:"shippingCost"`
	Quantity     int    `json:"quantity"`
	Condition    string `json:"condition"`
}

// Money is a price object with a currency code. Value arrives as either a
// number or a numeric string depending on the listing.
type Money struct {
	Value    Number `json:"value"`
	Currency string `json:"currency"`
}

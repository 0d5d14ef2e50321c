package amazon

import (
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

// SearchResponse wraps the /search endpoint payload.
type SearchResponse struct {
	Status string     `json:"status"`
	Data   SearchData `json:"data"`
}

// SearchData holds the product list of a search response.
type SearchData struct {
	TotalProducts int       `json:"total_products"`
	Products      []Product `json:"products"`
}

// Product is one raw Amazon search result. Prices and ratings arrive as
// display strings ("$1,299.99", "4.5 out of 5 stars").
type Product struct {
	ASIN                  string     `json:"asin"`
	ProductTitle          string     `json:"product_title"`
	ProductPrice          string     `json:"product_price"`
	ProductStarRating     string     `json:"product_star_rating"`
	ProductNumRatings     Number     `json:"product_num_ratings"`
	ProductURL            string     `json:"product_url"`
	ProductPhoto          string     `json:"product_photo"`
	ProductNumOffers      Number     `json:"product_num_offers"`
	ProductAvailability   string     `json:"product_availability"`
	IsBestSeller          bool       `json:"is_best_seller"`
	IsAmazonChoice        bool       `json:"is_amazon_choice"`
	IsPrime               bool       `json:"is_prime"`
	ClimatePledgeFriendly bool       `json:"climate_pledge_friendly"`
	SalesVolume           string     `json:"sales_volume"`
	Delivery              string     `json:"delivery"`
	CategoryPath          []Category `json:"category_path"`
}

// Category is one node of a product's category path.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DetailResponse wraps the /product-details endpoint payload.
type DetailResponse struct {
	Status string        `json:"status"`
	Data   ProductDetail `json:"data"`
}

// ProductDetail is the raw detail payload for one ASIN.
type ProductDetail struct {
	ASIN                string `json:"asin"`
	ProductTitle        string `json:"product_title"`
	ProductPrice        string `json:"product_price"`
	ProductStarRating   string `json:"product_star_rating"`
	ProductNumRatings   Number `json:"product_num_ratings"`
	ProductAvailability string `json:"product_availability"`
	Delivery            string `json:"delivery"`
}

package marketplace

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dealtrack/dealtrack_api/internal/models"
	"github.com/dealtrack/dealtrack_api/internal/throttle"
	"github.com/dealtrack/dealtrack_api/pkg/amazon"
)

// AmazonAdapter normalizes the Amazon RapidAPI payloads. Amazon is the
// primary marketplace: its search results carry the catalog attributes
// (rating, category, image) used to seed new products.
type AmazonAdapter struct {
	client *amazon.Client
	gate   *throttle.Gate
}

// NewAmazonAdapter wraps an Amazon client behind a throttle gate.
func NewAmazonAdapter(client *amazon.Client, gate *throttle.Gate) *AmazonAdapter {
	return &AmazonAdapter{client: client, gate: gate}
}

// Platform implements Adapter.
func (a *AmazonAdapter) Platform() string { return models.PlatformAmazon }

// PriceBand implements Adapter. Amazon results are never band-filtered
// because they define the reference price.
func (a *AmazonAdapter) PriceBand() PriceBand { return PriceBand{} }

// Search implements Adapter.
func (a *AmazonAdapter) Search(ctx context.Context, query string) ([]RawOffer, error) {
	if err := a.gate.Wait(ctx); err != nil {
		return nil, err
	}

	products, err := a.client.Search(ctx, query, 1)
	if err != nil {
		return nil, fmt.Errorf("amazon search %q: %w", query, err)
	}

	offers := make([]RawOffer, 0, len(products))
	for _, p := range products {
		offers = append(offers, amazonOffer(p))
	}
	return offers, nil
}

// FetchDetail implements Adapter. The listing id is the ASIN.
func (a *AmazonAdapter) FetchDetail(ctx context.Context, ref ListingRef) (*Detail, error) {
	asin := ref.ListingID
	if asin == "" || asin == "N/A" {
		return nil, ErrNoListing
	}

	if err := a.gate.Wait(ctx); err != nil {
		return nil, err
	}

	d, err := a.client.ProductDetails(ctx, asin)
	if err != nil {
		return nil, fmt.Errorf("amazon detail %s: %w", asin, err)
	}

	return &Detail{
		Price:        ParsePrice(d.ProductPrice),
		InStock:      d.ProductAvailability != "Out of Stock",
		FreeShipping: strings.Contains(d.Delivery, "FREE"),
	}, nil
}

func amazonOffer(p amazon.Product) RawOffer {
	title := p.ProductTitle
	if title == "" {
		title = "Unknown Product"
	}

	freeShipping := p.IsPrime
	if !freeShipping && strings.Contains(strings.ToLower(p.Delivery), "free") {
		freeShipping = true
	}

	availability := strings.ToLower(p.ProductAvailability)
	inStock := strings.Contains(availability, "in stock") || strings.Contains(availability, "available")
	if !inStock && p.ProductNumOffers > 0 {
		inStock = true
	}

	path := make([]string, 0, len(p.CategoryPath))
	for _, node := range p.CategoryPath {
		path = append(path, node.Name)
	}

	return RawOffer{
		Platform:     models.PlatformAmazon,
		Title:        title,
		Price:        ParsePrice(p.ProductPrice),
		FreeShipping: freeShipping,
		InStock:      inStock,
		Information:  amazonInformation(p),
		ImageURL:     p.ProductPhoto,
		ListingID:    p.ASIN,
		Link:         p.ProductURL,
		Extra: &ProductInfo{
			Rating:   ParseRating(p.ProductStarRating),
			Category: Categorize(title, path),
		},
	}
}

// amazonInformation builds the display info line shown on a product page.
func amazonInformation(p amazon.Product) string {
	var info []string

	if p.ASIN != "" {
		info = append(info, "ASIN: "+p.ASIN)
	}
	if p.IsPrime {
		info = append(info, "Prime Eligible")
	}
	if p.IsBestSeller {
		info = append(info, "Best Seller")
	}
	if p.IsAmazonChoice {
		info = append(info, "Amazon's Choice")
	}
	if p.ProductNumRatings > 0 {
		info = append(info, strconv.FormatInt(int64(p.ProductNumRatings), 10)+" ratings")
	}
	if p.SalesVolume != "" {
		info = append(info, "Sales: "+p.SalesVolume)
	}
	if p.Delivery != "" {
		info = append(info, "Delivery: "+p.Delivery)
	}
	if p.ClimatePledgeFriendly {
		info = append(info, "Climate Pledge Friendly")
	}

	if len(info) == 0 {
		return "No additional information"
	}
	return strings.Join(info, " • ")
}

package marketplace

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/dealtrack/dealtrack_api/internal/models"
	"github.com/dealtrack/dealtrack_api/internal/throttle"
	"github.com/dealtrack/dealtrack_api/pkg/walmart"
)

var walmartItemIDRe = regexp.MustCompile(`/ip/.*/(\d+)`)

// WalmartAdapter normalizes the Walmart RapidAPI payloads. Walmart search
// results carry no shipping or stock flags, so offers default to free
// shipping and in stock until a detail refresh says otherwise.
type WalmartAdapter struct {
	client *walmart.Client
	gate   *throttle.Gate
}

// NewWalmartAdapter wraps a Walmart client behind a throttle gate.
func NewWalmartAdapter(client *walmart.Client, gate *throttle.Gate) *WalmartAdapter {
	return &WalmartAdapter{client: client, gate: gate}
}

// Platform implements Adapter.
func (a *WalmartAdapter) Platform() string { return models.PlatformWalmart }

// PriceBand implements Adapter.
func (a *WalmartAdapter) PriceBand() PriceBand { return PriceBand{Lower: 0.3, Upper: 2.5} }

// Search implements Adapter.
func (a *WalmartAdapter) Search(ctx context.Context, query string) ([]RawOffer, error) {
	if err := a.gate.Wait(ctx); err != nil {
		return nil, err
	}

	products, err := a.client.Search(ctx, query, 1)
	if err != nil {
		return nil, fmt.Errorf("walmart search %q: %w", query, err)
	}

	offers := make([]RawOffer, 0, len(products))
	for _, p := range products {
		offers = append(offers, walmartOffer(p))
	}
	return offers, nil
}

// FetchDetail implements Adapter. The numeric item id is taken from the
// stored listing id, falling back to the /ip/ segment of the link.
func (a *WalmartAdapter) FetchDetail(ctx context.Context, ref ListingRef) (*Detail, error) {
	itemID := ref.ListingID
	if itemID == "" || itemID == "N/A" {
		if m := walmartItemIDRe.FindStringSubmatch(ref.Link); m != nil {
			itemID = m[1]
		}
	}
	if itemID == "" || itemID == "N/A" {
		return nil, ErrNoListing
	}

	if err := a.gate.Wait(ctx); err != nil {
		return nil, err
	}

	d, err := a.client.ProductDetails(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("walmart detail %s: %w", itemID, err)
	}

	inStock := d.Availability == "IN_STOCK"

	return &Detail{
		Price:        float64(d.Price),
		InStock:      inStock,
		FreeShipping: true,
	}, nil
}

func walmartOffer(p walmart.Product) RawOffer {
	title := p.Name
	if title == "" {
		title = p.Title
	}
	if title == "" {
		title = "Unknown Product"
	}

	price := 0.0
	if p.PrimaryOffer != nil && p.PrimaryOffer.MinPrice > 0 {
		price = float64(p.PrimaryOffer.MinPrice)
	} else {
		price = float64(p.Price)
	}

	var info []string
	if p.Rating > 0 {
		info = append(info, fmt.Sprintf("Rating: %g/5", float64(p.Rating)))
	}
	if p.NumberOfReviews != "" {
		info = append(info, string(p.NumberOfReviews)+" reviews")
	}
	if p.Brand != "" {
		info = append(info, "Brand: "+p.Brand)
	}
	if p.PrimaryOffer != nil && p.PrimaryOffer.OfferType != "" {
		info = append(info, "Type: "+p.PrimaryOffer.OfferType)
	}
	information := "No additional information"
	if len(info) > 0 {
		information = strings.Join(info, " • ")
	}

	listingID := string(p.ItemID)
	if listingID == "" {
		listingID = string(p.UsItemID)
	}

	link := p.ProductPageURL
	if link == "" {
		link = p.CanonicalURL
	}

	imageURL := p.Image
	if p.ImageInfo != nil && p.ImageInfo.ThumbnailURL != "" {
		imageURL = p.ImageInfo.ThumbnailURL
	}

	return RawOffer{
		Platform:     models.PlatformWalmart,
		Title:        title,
		Price:        price,
		FreeShipping: true,
		InStock:      true,
		Information:  information,
		ImageURL:     imageURL,
		ListingID:    listingID,
		Link:         link,
	}
}

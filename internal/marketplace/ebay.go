package marketplace

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dealtrack/dealtrack_api/internal/models"
	"github.com/dealtrack/dealtrack_api/internal/throttle"
	"github.com/dealtrack/dealtrack_api/pkg/ebay"
)

var ebayItemIDRe = regexp.MustCompile(`/itm/(\d+)`)

// EbayAdapter normalizes the eBay RapidAPI payloads. eBay totals include
// shipping, so offer prices are landed prices.
type EbayAdapter struct {
	client *ebay.Client
	gate   *throttle.Gate
}

// NewEbayAdapter wraps an eBay client behind a throttle gate.
func NewEbayAdapter(client *ebay.Client, gate *throttle.Gate) *EbayAdapter {
	return &EbayAdapter{client: client, gate: gate}
}

// Platform implements Adapter.
func (a *EbayAdapter) Platform() string { return models.PlatformEbay }

// PriceBand implements Adapter. eBay listings swing widest around the
// reference price (auctions, bundles), so the band is the loosest.
func (a *EbayAdapter) PriceBand() PriceBand { return PriceBand{Lower: 0.2, Upper: 3.0} }

// Search implements Adapter.
func (a *EbayAdapter) Search(ctx context.Context, query string) ([]RawOffer, error) {
	if err := a.gate.Wait(ctx); err != nil {
		return nil, err
	}

	items, err := a.client.Search(ctx, query, 1)
	if err != nil {
		return nil, fmt.Errorf("ebay search %q: %w", query, err)
	}

	offers := make([]RawOffer, 0, len(items))
	for _, it := range items {
		offers = append(offers, ebayOffer(it))
	}
	return offers, nil
}

// FetchDetail implements Adapter. The numeric item id is taken from the
// stored listing id, falling back to the /itm/ segment of the link.
func (a *EbayAdapter) FetchDetail(ctx context.Context, ref ListingRef) (*Detail, error) {
	itemID := ref.ListingID
	if itemID == "" || itemID == "N/A" {
		if m := ebayItemIDRe.FindStringSubmatch(ref.Link); m != nil {
			itemID = m[1]
		}
	}
	if itemID == "" || itemID == "N/A" {
		return nil, ErrNoListing
	}

	if err := a.gate.Wait(ctx); err != nil {
		return nil, err
	}

	d, err := a.client.ItemDetails(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("ebay detail %s: %w", itemID, err)
	}

	price := float64(d.Price.Value)
	shipping := float64(d.ShippingCost.Value)

	return &Detail{
		Price:        price + shipping,
		InStock:      d.Quantity > 0,
		FreeShipping: shipping == 0,
	}, nil
}

func ebayOffer(it ebay.Item) RawOffer {
	title := it.Title
	if title == "" {
		title = "Unknown Product"
	}

	price := float64(it.Total)
	if price == 0 {
		price = float64(it.Price)
	}

	freeShipping := it.Shipping == 0 ||
		strings.Contains(strings.ToLower(it.DeliveryDate), "free")
	inStock := !strings.Contains(strings.ToLower(it.Condition), "sold out")

	var info []string
	if it.ItemID != "" {
		info = append(info, "eBay ID: "+string(it.ItemID))
	}
	if it.BidCount > 0 {
		info = append(info, "Bids: "+strconv.FormatInt(int64(it.BidCount), 10))
	}
	if it.TimeLeft != "" {
		info = append(info, "Time left: "+it.TimeLeft)
	}
	if it.Condition != "" {
		info = append(info, "Condition: "+it.Condition)
	}
	if it.DeliveryDate != "" {
		info = append(info, "Delivery: "+it.DeliveryDate)
	}
	information := "No additional information"
	if len(info) > 0 {
		information = strings.Join(info, " • ")
	}

	condition := it.Condition
	if condition == "" {
		condition = "Unknown"
	}

	return RawOffer{
		Platform:     models.PlatformEbay,
		Title:        title,
		Price:        price,
		FreeShipping: freeShipping,
		InStock:      inStock,
		Condition:    condition,
		Information:  information,
		ImageURL:     it.ImageURL,
		ListingID:    string(it.ItemID),
		Link:         it.URL,
	}
}

package walmart

import (
	"encoding/json"
	"testing"
)

func TestFlattenSearchResult(t *testing.T) {
	groups := []json.RawMessage{
		json.RawMessage(`[{"name":"A","price":10},{"name":"B","price":20}]`),
		json.RawMessage(`{"name":"C","price":30}`),
		json.RawMessage(`"not a product"`),
	}

	products := flattenSearchResult(groups)
	if len(products) != 3 {
		t.Fatalf("flattened %d products, want 3", len(products))
	}
	if products[0].Name != "A" || products[2].Name != "C" {
		t.Fatalf("unexpected order: %+v", products)
	}
	if products[1].Price != 20 {
		t.Errorf("products[1].Price = %v, want 20", products[1].Price)
	}
}

func TestProductDecodeFlexibleFields(t *testing.T) {
	// Ids and prices arrive as numbers or strings depending on the group.
	raw := `{
		"itemId": 987654321,
		"usItemId": "111222333",
		"name": "Widget",
		"price": "$1,299.99",
		"rating": 4.5,
		"numberOfReviews": 874,
		"primaryOffer": {"offerPrice": "19.99", "minPrice": null}
	}`

	var p Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if p.ItemID != "987654321" {
		t.Errorf("ItemID = %q, want 987654321", p.ItemID)
	}
	if p.UsItemID != "111222333" {
		t.Errorf("UsItemID = %q, want 111222333", p.UsItemID)
	}
	if p.Price != 1299.99 {
		t.Errorf("Price = %v, want 1299.99", p.Price)
	}
	if p.NumberOfReviews != "874" {
		t.Errorf("NumberOfReviews = %q, want 874", p.NumberOfReviews)
	}
	if p.PrimaryOffer == nil || p.PrimaryOffer.OfferPrice != 19.99 {
		t.Errorf("PrimaryOffer = %+v, want offer price 19.99", p.PrimaryOffer)
	}
	if p.PrimaryOffer.MinPrice != 0 {
		t.Errorf("MinPrice = %v, want 0 for null", p.PrimaryOffer.MinPrice)
	}
}

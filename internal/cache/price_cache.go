package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dealtrack/dealtrack_api/internal/models"
)

// priceTTL bounds how stale a cached latest-price snapshot may get between
// refresh runs.
const priceTTL = 15 * time.Minute

// PriceCache caches the latest per-platform offers of a product. Entries are
// invalidated whenever a refresh or sync writes new observations.
type PriceCache struct {
	redis *RedisClient
}

// NewPriceCache creates a new PriceCache.
func NewPriceCache(redis *RedisClient) *PriceCache {
	return &PriceCache{redis: redis}
}

func (c *PriceCache) key(productID int64) string {
	return fmt.Sprintf("price:latest:%d", productID)
}

// Set stores the latest offers for a product.
func (c *PriceCache) Set(ctx context.Context, productID int64, offers []models.PlatformOffer) error {
	jsonData, err := json.Marshal(offers)
	if err != nil {
		return fmt.Errorf("failed to marshal offers: %w", err)
	}
	return c.redis.Set(ctx, c.key(productID), string(jsonData), priceTTL)
}

// Get retrieves the cached latest offers for a product. Returns
// (nil, false, nil) on a cache miss.
func (c *PriceCache) Get(ctx context.Context, productID int64) ([]models.PlatformOffer, bool, error) {
	jsonData, found, err := c.redis.Get(ctx, c.key(productID))
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	var offers []models.PlatformOffer
	if err := json.Unmarshal([]byte(jsonData), &offers); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal offers: %w", err)
	}
	return offers, true, nil
}

// Invalidate drops the cached offers for the given products.
func (c *PriceCache) Invalidate(ctx context.Context, productIDs ...int64) error {
	if len(productIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		keys = append(keys, c.key(id))
	}
	return c.redis.Delete(ctx, keys...)
}

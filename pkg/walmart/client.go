// Package walmart is a minimal client for the Walmart RapidAPI services.
// Search and product detail are served by two different RapidAPI hosts, and
// the search payload nests products inside a jagged array that the client
// flattens before returning.
package walmart

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// SearchHost serves listing search.
	SearchHost = "walmart-api4.p.rapidapi.com"
	// DetailHost serves per-item detail.
	DetailHost = "walmart-search-and-pricing.p.rapidapi.com"
)

// Client is a minimal HTTP client for the Walmart RapidAPI endpoints.
type Client struct {
	httpClient *http.Client
	apiKey     string
	debug      bool
}

// NewClient constructs a new Walmart client with sane defaults.
func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		debug:      os.Getenv("ENV") == "development",
	}
}

// Search returns raw search results for a query, flattened from the nested
// searchResult groups.
func (c *Client) Search(ctx context.Context, query string, page int) ([]Product, error) {
	if page <= 0 {
		page = 1
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("page", strconv.Itoa(page))

	var resp SearchResponse
	if err := c.doGet(ctx, SearchHost, "/search", params, &resp); err != nil {
		return nil, err
	}
	return flattenSearchResult(resp.SearchResult), nil
}

// ProductDetails fetches current price/availability detail for one item id.
func (c *Client) ProductDetails(ctx context.Context, itemID string) (*Detail, error) {
	params := url.Values{}
	params.Set("itemId", itemID)

	var resp Detail
	if err := c.doGet(ctx, DetailHost, "/product-details", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// flattenSearchResult unwraps the jagged searchResult array. Each element is
// either a product object or a nested array of product objects; anything
// undecodable is skipped.
func flattenSearchResult(groups []json.RawMessage) []Product {
	var products []Product
	for _, raw := range groups {
		var group []Product
		if err := json.Unmarshal(raw, &group); err == nil {
			products = append(products, group...)
			continue
		}
		var single Product
		if err := json.Unmarshal(raw, &single); err == nil {
			products = append(products, single)
		}
	}
	return products
}

// doGet performs a GET against the given RapidAPI host and decodes the JSON
// response into result.
func (c *Client) doGet(ctx context.Context, host, endpoint string, params url.Values, result any) error {
	reqURL := "https://" + host + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("host", host).
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			Msg("[WALMART] Incoming response")
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("walmart api returned %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

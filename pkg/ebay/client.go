// Package ebay is a minimal client for the eBay RapidAPI services. Search and
// item detail are served by two different RapidAPI hosts.
package ebay

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
	SearchHost = "ebay-data-api.p.rapidapi.com"
	// DetailHost serves per-listing detail.
	DetailHost = "real-time-ebay-data.p.rapidapi.com"
)

// Client is a minimal HTTP client for the eBay RapidAPI endpoints.
type Client struct {
	httpClient *http.Client
	apiKey     string
	debug      bool
}

// NewClient constructs a new eBay client with sane defaults.
func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		debug:      os.Getenv("ENV") == "development",
	}
}

// Search returns raw US search results for a query.
func (c *Client) Search(ctx context.Context, query string, page int) ([]Item, error) {
	if page <= 0 {
		page = 1
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("countryIso", "us")

	var resp SearchResponse
	if err := c.doGet(ctx, SearchHost, "/search", params, &resp); err != nil {
		return nil, err
	}
	return resp.Data.Items, nil
}

// ItemDetails fetches current price/stock detail for one listing id.
func (c *Client) ItemDetails(ctx context.Context, itemID string) (*ItemDetail, error) {
	params := url.Values{}
	params.Set("itemId", itemID)

	var resp DetailResponse
	if err := c.doGet(ctx, DetailHost, "/item-details", params, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
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
			Msg("[EBAY] Incoming response")
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ebay api returned %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

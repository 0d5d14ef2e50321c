// Package amazon is a minimal client for the real-time-amazon-data RapidAPI
// service used to search listings and fetch per-ASIN detail.
package amazon

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
	// Host is the RapidAPI host serving Amazon data.
	Host = "real-time-amazon-data.p.rapidapi.com"
)

// Client is a minimal HTTP client for the Amazon RapidAPI endpoints.
type Client struct {
	httpClient *http.Client
	apiKey     string
	debug      bool
}

// NewClient constructs a new Amazon client with sane defaults.
func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		debug:      os.Getenv("ENV") == "development",
	}
}

// Search returns raw search results for a query. Country is fixed to US.
func (c *Client) Search(ctx context.Context, query string, page int) ([]Product, error) {
	if page <= 0 {
		page = 1
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("country", "US")

	var resp SearchResponse
	if err := c.doGet(ctx, "/search", params, &resp); err != nil {
		return nil, err
	}
	return resp.Data.Products, nil
}

// ProductDetails fetches current price/availability detail for one ASIN.
func (c *Client) ProductDetails(ctx context.Context, asin string) (*ProductDetail, error) {
	params := url.Values{}
	params.Set("asin", asin)
	params.Set("country", "US")

	var resp DetailResponse
	if err := c.doGet(ctx, "/product-details", params, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// doGet performs a GET against the RapidAPI host and decodes the JSON
// response into result.
func (c *Client) doGet(ctx context.Context, endpoint string, params url.Values, result any) error {
	reqURL := "https://" + Host + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", Host)

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
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			Msg("[AMAZON] Incoming response")
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("amazon api returned %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

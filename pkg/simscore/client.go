// Package simscore is a client for the external title-similarity oracle. The
// oracle scores how likely two listing titles refer to the same product.
package simscore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client calls the similarity oracle over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

type scoreRequest struct {
	TitleA string `json:"title_a"`
	TitleB string `json:"title_b"`
}

type scoreResponse struct {
	Score float64 `json:"score"`
}

// NewClient constructs a similarity client. baseURL must not have a trailing
// slash.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// Score returns a similarity score in [0, 1] for two titles.
func (c *Client) Score(ctx context.Context, titleA, titleB string) (float64, error) {
	body, err := json.Marshal(scoreRequest{TitleA: titleA, TitleB: titleB})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/score", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("similarity api returned %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed scoreResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	score := parsed.Score
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score, nil
}

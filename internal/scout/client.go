// Package scout wraps the API side of the scout worker: the HTTP client
// for its /api/scout endpoint and the per-hunt in-flight lock that keeps
// a hunt from being scouted twice concurrently.
package scout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const httpTimeout = 60 * time.Second // marketplace scrapes are slow

// Client calls the scout worker over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient constructs a Client for the worker at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: httpTimeout},
	}
}

// Request is the body of POST /api/scout.
type Request struct {
	Brand    string  `json:"brand"`
	ItemName *string `json:"item_name"`
	HuntID   string  `json:"hunt_id"`
	MaxPrice int     `json:"max_price"`
}

// Response is the worker's success body.
type Response struct {
	Success    bool   `json:"success"`
	Query      string `json:"query"`
	DealsFound int    `json:"deals_found"`
}

// Scout runs one scout cycle for a hunt on the worker and returns its
// result. Any non-2xx status or transport failure is returned as an
// error; no structured error body is consumed.
func (c *Client) Scout(ctx context.Context, req Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/scout", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http POST: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("scout worker returned %d", resp.StatusCode)
	}

	var out Response
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	return &out, nil
}

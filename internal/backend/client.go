package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// requestTimeout bounds every backend call. The dashboard never retries on
// its own; a request that outlives this resolves to a failure message.
const requestTimeout = 30 * time.Second

// Client talks to the analytics backend.
type Client struct {
	http *resty.Client
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string) *Client {
	c := resty.New()
	c.SetBaseURL(baseURL)
	c.SetTimeout(requestTimeout)
	c.SetHeader("Content-Type", "application/json")
	return &Client{http: c}
}

// DataOverview fetches the aggregate metrics snapshot.
func (c *Client) DataOverview(ctx context.Context) (*OverviewResponse, error) {
	var out OverviewResponse
	var apiErr apiError

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apiErr).
		Get("/api/data-overview")
	if err != nil {
		return nil, fmt.Errorf("fetch data overview: %w", err)
	}
	if resp.IsError() {
		if apiErr.Detail != "" {
			return nil, fmt.Errorf("data overview failed: %s", apiErr.Detail)
		}
		return nil, fmt.Errorf("data overview failed with status %d", resp.StatusCode())
	}
	return &out, nil
}

// Query submits a natural-language question and returns the agent's answer.
func (c *Client) Query(ctx context.Context, query string) (*QueryResponse, error) {
	var out QueryResponse
	var apiErr apiError

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(QueryRequest{Query: query}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/api/query")
	if err != nil {
		return nil, fmt.Errorf("submit query: %w", err)
	}
	if resp.IsError() {
		if apiErr.Detail != "" {
			return nil, fmt.Errorf("query failed: %s", apiErr.Detail)
		}
		return nil, fmt.Errorf("query failed with status %d", resp.StatusCode())
	}
	return &out, nil
}

package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cicd-demo/statusboard/internal/models/entities"
)

// Fetcher retrieves reports from the reporting service.
type Fetcher interface {
	FetchHealth(ctx context.Context) (*entities.HealthReport, error)
	FetchStats(ctx context.Context) (*entities.StatsReport, error)
}

// Client is the HTTP Fetcher.
type Client struct {
	BaseURL string
	Client  *http.Client
}

var _ Fetcher = (*Client)(nil)

// NewClient creates a client whose every request is bounded by timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) FetchHealth(ctx context.Context) (*entities.HealthReport, error) {
	var h entities.HealthReport
	if err := c.getJSON(ctx, "/api/v1/health", &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *Client) FetchStats(ctx context.Context) (*entities.StatsReport, error) {
	var s entities.StatsReport
	if err := c.getJSON(ctx, "/api/v1/stats", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	url := c.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: unexpected status %d: %s", url, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: failed to decode response: %w", url, err)
	}
	return nil
}

package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const maxResponseBytes = 4 * 1024 * 1024

// wrapperKeys are the envelope keys under which the market-data service may
// nest the instrument array instead of returning it bare.
var wrapperKeys = []string{"data", "items", "result", "results", "prices"}

// Client fetches the instrument catalog from the market-data service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a market-data client. The timeout bounds each fetch
// independently of the caller's context.
func NewClient(baseURL, apiKey string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With("component", "market_client"),
	}
}

// FetchCatalog retrieves the current instrument list. A non-2xx status or
// transport failure is an error; an empty or unparseable body is a valid
// "no data" outcome and returns an empty catalog with no error.
func (c *Client) FetchCatalog(ctx context.Context) ([]Item, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid market data URL: %w", err)
	}
	q := u.Query()
	q.Set("api_key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create market data request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("market data request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("market data service returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read market data response: %w", err)
	}

	items := decodeCatalog(body)
	if items == nil {
		c.log.WarnContext(ctx, "Market data response had no recognizable item list", "body_size", len(body))
		return []Item{}, nil
	}

	c.log.DebugContext(ctx, "Fetched market catalog", "item_count", len(items))
	return items, nil
}

// decodeCatalog accepts either a bare JSON array of items or an object
// nesting the array under one of the known wrapper keys. It returns nil
// when no item list can be recognized.
func decodeCatalog(body []byte) []Item {
	var items []Item
	if err := json.Unmarshal(body, &items); err == nil {
		return items
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil
	}
	for _, key := range wrapperKeys {
		raw, ok := wrapped[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &items); err == nil {
			return items
		}
	}
	return nil
}

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// SearxngClient queries a self-hosted SearXNG instance.
type SearxngClient struct {
	baseURL string
	client  *http.Client
}

// NewSearxngClient creates a new SearXNG client.
func NewSearxngClient(baseURL string) *SearxngClient {
	return &SearxngClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

var _ Searcher = (*SearxngClient)(nil)

type searxngResponse struct {
	Results []struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	} `json:"results"`
}

// Search implements Searcher.
func (c *SearxngClient) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 3
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	u.Path = "/search"

	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("categories", "general")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "seobrief/1.0 (content analyzer)")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searxng API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("searxng API returned %d: %s", resp.StatusCode, string(body))
	}

	var result searxngResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	var urls []string
	for _, r := range result.Results {
		if len(urls) >= limit {
			break
		}
		urls = append(urls, r.URL)
	}
	return urls, nil
}

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const tavilyDefaultURL = "https://api.tavily.com/search"

// TavilyClient queries the Tavily search API.
type TavilyClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewTavilyClient creates a new Tavily client.
func NewTavilyClient(apiKey string) *TavilyClient {
	return &TavilyClient{
		apiKey:  apiKey,
		baseURL: tavilyDefaultURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

var _ Searcher = (*TavilyClient)(nil)

type tavilyRequest struct {
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth,omitempty"`
	MaxResults  int    `json:"max_results,omitempty"`
}

type tavilyResponse struct {
	Results []struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	} `json:"results"`
}

// Search implements Searcher.
func (c *TavilyClient) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 3
	}

	payload, err := json.Marshal(tavilyRequest{
		Query:       query,
		SearchDepth: "basic",
		MaxResults:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tavily API returned %d: %s", resp.StatusCode, string(body))
	}

	var result tavilyResponse
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

package search

import (
	"context"
	"log"
	"os"

	"github.com/Phishman81/seo-content-briefing-generator/internal/config"
)

// Searcher returns an ordered list of result URLs for a query, at most limit
// entries. Provider errors are non-fatal to the pipeline: callers log a
// warning and continue with whatever was returned.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]string, error)
}

// CreateSearcher creates a search client based on configuration. Returns nil
// if no provider is usable, in which case benchmarking is unavailable.
func CreateSearcher(cfg *config.Config) Searcher {
	switch cfg.Search.Provider {
	case "searxng":
		if cfg.Search.SearxngURL == "" {
			log.Println("SearXNG selected but no searxng_url configured")
			return nil
		}
		return NewSearxngClient(cfg.Search.SearxngURL)
	case "tavily":
		apiKey := os.Getenv(cfg.Search.APIKeyEnv)
		if apiKey == "" {
			log.Printf("Tavily selected but %s is not set", cfg.Search.APIKeyEnv)
			return nil
		}
		return NewTavilyClient(apiKey)
	}
	log.Printf("Unknown search provider %q", cfg.Search.Provider)
	return nil
}

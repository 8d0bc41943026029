package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Phishman81/seo-content-briefing-generator/internal/config"
)

func TestTavilySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer auth, got %q", got)
		}

		var req tavilyRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Query != "seo tips" {
			t.Errorf("expected query 'seo tips', got %q", req.Query)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]string{
				{"title": "A", "url": "https://a.com"},
				{"title": "B", "url": "https://b.com"},
			},
		})
	}))
	defer srv.Close()

	c := NewTavilyClient("test-key")
	c.baseURL = srv.URL

	urls, err := c.Search(context.Background(), "seo tips", 3)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(urls) != 2 || urls[0] != "https://a.com" || urls[1] != "https://b.com" {
		t.Errorf("unexpected urls: %v", urls)
	}
}

func TestTavilySearchBoundsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]string{
				{"url": "https://a.com"},
				{"url": "https://b.com"},
				{"url": "https://c.com"},
				{"url": "https://d.com"},
			},
		})
	}))
	defer srv.Close()

	c := NewTavilyClient("k")
	c.baseURL = srv.URL

	urls, err := c.Search(context.Background(), "q", 2)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(urls) != 2 {
		t.Errorf("expected 2 urls, got %d", len(urls))
	}
}

func TestTavilySearchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewTavilyClient("k")
	c.baseURL = srv.URL

	if _, err := c.Search(context.Background(), "q", 3); err == nil {
		t.Error("expected error on 429 response")
	}
}

func TestSearxngSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("expected /search, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("expected format=json, got %q", got)
		}
		if got := r.URL.Query().Get("q"); got != "content marketing" {
			t.Errorf("expected query 'content marketing', got %q", got)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]string{
				{"title": "X", "url": "https://x.com"},
			},
		})
	}))
	defer srv.Close()

	c := NewSearxngClient(srv.URL)
	urls, err := c.Search(context.Background(), "content marketing", 3)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(urls) != 1 || urls[0] != "https://x.com" {
		t.Errorf("unexpected urls: %v", urls)
	}
}

func TestCreateSearcher(t *testing.T) {
	cfg := &config.Config{}
	cfg.Search.Provider = "searxng"
	cfg.Search.SearxngURL = "http://localhost:8888"
	if s := CreateSearcher(cfg); s == nil {
		t.Error("expected searxng searcher")
	}

	cfg.Search.Provider = "tavily"
	cfg.Search.APIKeyEnv = "SEOBRIEF_TEST_TAVILY_KEY"
	t.Setenv("SEOBRIEF_TEST_TAVILY_KEY", "")
	if s := CreateSearcher(cfg); s != nil {
		t.Error("expected nil searcher without API key")
	}

	t.Setenv("SEOBRIEF_TEST_TAVILY_KEY", "k")
	if s := CreateSearcher(cfg); s == nil {
		t.Error("expected tavily searcher with API key")
	}
}

package extract

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// Extractor fetches a page and returns a best-effort plain-text rendering.
//
// Extraction tries, in order: readability, the first <article> element, all
// <p> elements joined, the whole document text. The first non-empty candidate
// wins. A network failure yields a diagnostic string rather than an error,
// so callers must treat any returned text as potentially a failure message.
type Extractor struct {
	client *http.Client
}

// NewExtractor creates an extractor with the given fetch timeout.
func NewExtractor(timeout time.Duration) *Extractor {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Extractor{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
	}
}

// Extract fetches pageURL and returns its extracted text, or a non-empty
// diagnostic string if the page could not be fetched. Single attempt, no
// retries.
func (e *Extractor) Extract(pageURL string) string {
	req, err := http.NewRequest("GET", pageURL, nil)
	if err != nil {
		return fmt.Sprintf("could not fetch %s: %v", pageURL, err)
	}
	req.Header.Set("User-Agent", "seobrief/1.0 (content analyzer)")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Sprintf("could not fetch %s: %v", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Sprintf("could not fetch %s: HTTP %d %s", pageURL, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Sprintf("could not fetch %s: %v", pageURL, err)
	}

	return extractText(string(body), pageURL)
}

// extractText runs the layered fallback chain over raw HTML.
func extractText(html, pageURL string) string {
	parsedURL, _ := url.Parse(pageURL)

	if article, err := readability.FromReader(strings.NewReader(html), parsedURL); err == nil {
		if text := normalize(article.TextContent); text != "" {
			return text
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript").Remove()

	if text := normalize(doc.Find("article").First().Text()); text != "" {
		return text
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if p := normalize(s.Text()); p != "" {
			paragraphs = append(paragraphs, p)
		}
	})
	if len(paragraphs) > 0 {
		return strings.Join(paragraphs, " ")
	}

	return normalize(doc.Text())
}

// normalize collapses all whitespace runs to single spaces.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// WordCount counts whitespace-delimited tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

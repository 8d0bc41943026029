package competitor

import (
	"log"

	"github.com/Phishman81/seo-content-briefing-generator/internal/extract"
)

// Entry is one competitor article: its URL, extracted text, and word count.
// Text may be an extraction diagnostic rather than article content; downstream
// consumers must tolerate that.
type Entry struct {
	URL       string
	Text      string
	WordCount int
}

// Aggregator builds competitor entries from search result URLs.
type Aggregator struct {
	extractor *extract.Extractor
}

// NewAggregator creates a new competitor aggregator.
func NewAggregator(extractor *extract.Extractor) *Aggregator {
	return &Aggregator{extractor: extractor}
}

// Aggregate extracts text from each URL sequentially and returns one entry
// per input URL, preserving order. Failed extractions are not filtered; their
// diagnostic string becomes the entry text.
func (a *Aggregator) Aggregate(urls []string) []Entry {
	entries := make([]Entry, 0, len(urls))
	for _, u := range urls {
		text := a.extractor.Extract(u)
		entries = append(entries, Entry{
			URL:       u,
			Text:      text,
			WordCount: extract.WordCount(text),
		})
		log.Printf("Extracted competitor %s (%d words)", u, extract.WordCount(text))
	}
	return entries
}

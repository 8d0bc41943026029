package session

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Phishman81/seo-content-briefing-generator/internal/competitor"
	"github.com/Phishman81/seo-content-briefing-generator/internal/extract"
	"github.com/Phishman81/seo-content-briefing-generator/internal/keywords"
)

// Source identifies where the user's content came from.
type Source string

const (
	SourceURL  Source = "url"
	SourceText Source = "text"
)

// ContentItem is the user's own content, immutable once captured.
type ContentItem struct {
	Source    Source
	RawText   string
	WordCount int
}

// Meta is the optional article metadata the user can supply.
type Meta struct {
	Audience     string
	Goal         string
	FocusKeyword string
}

// String renders the metadata for embedding into a prompt.
func (m Meta) String() string {
	return fmt.Sprintf("Audience: %s, Goal: %s, Focus keyword: %s", m.Audience, m.Goal, m.FocusKeyword)
}

// IsZero reports whether no metadata was supplied.
func (m Meta) IsZero() bool {
	return m.Audience == "" && m.Goal == "" && m.FocusKeyword == ""
}

// Stage is the pipeline state, derived from which artifacts exist.
type Stage int

const (
	StageNoContent Stage = iota
	StageHasContent
	StageAnalyzed
	StageBenchmarked
	StageBriefed
)

// String returns a human-readable stage name.
func (s Stage) String() string {
	switch s {
	case StageHasContent:
		return "content captured"
	case StageAnalyzed:
		return "analyzed"
	case StageBenchmarked:
		return "benchmarked"
	case StageBriefed:
		return "briefed"
	default:
		return "no content"
	}
}

// Session holds all per-session pipeline state. Each stage reads the fields
// it requires and writes only its own result field; user interaction writes
// the input fields. There are no backward transitions within a run: capturing
// new content starts a new run and clears all downstream results, so stale
// artifacts from a previous run never outlive the content they describe.
type Session struct {
	mu sync.Mutex

	content     ContentItem
	meta        Meta
	keywordRows []keywords.Row

	analysis    string
	benchmark   string
	competitors []competitor.Entry
	briefing    string
}

// New creates an empty session in StageNoContent.
func New() *Session {
	return &Session{}
}

// CaptureContent captures the user's own content from a URL and/or direct
// text. Direct text always wins over the URL; the URL is only fetched when no
// text is supplied. Returns a warning string when both inputs were given.
func (s *Session) CaptureContent(urlInput, textInput string, extractor *extract.Extractor) (warning string, err error) {
	urlInput = strings.TrimSpace(urlInput)
	textInput = strings.TrimSpace(textInput)

	if urlInput == "" && textInput == "" {
		return "", fmt.Errorf("please provide a URL or paste your article text")
	}

	var item ContentItem
	switch {
	case textInput != "":
		if urlInput != "" {
			warning = "Both a URL and direct text were supplied. The direct text is used."
		}
		item = ContentItem{Source: SourceText, RawText: textInput}
	default:
		item = ContentItem{Source: SourceURL, RawText: strings.TrimSpace(extractor.Extract(urlInput))}
	}
	item.WordCount = extract.WordCount(item.RawText)

	if item.RawText == "" {
		return warning, fmt.Errorf("no content could be captured from the given input")
	}

	s.mu.Lock()
	s.content = item
	// New content invalidates every result derived from the old content.
	s.analysis = ""
	s.benchmark = ""
	s.competitors = nil
	s.briefing = ""
	s.mu.Unlock()
	return warning, nil
}

// SetMeta records the optional metadata.
func (s *Session) SetMeta(m Meta) {
	s.mu.Lock()
	s.meta = m
	s.mu.Unlock()
}

// SetKeywordRows records the uploaded keyword table.
func (s *Session) SetKeywordRows(rows []keywords.Row) {
	s.mu.Lock()
	s.keywordRows = rows
	s.mu.Unlock()
}

// Content returns the captured content item.
func (s *Session) Content() ContentItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content
}

// Meta returns the metadata record.
func (s *Session) Meta() Meta {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta
}

// KeywordRows returns the uploaded keyword table.
func (s *Session) KeywordRows() []keywords.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keywordRows
}

// Analysis returns the critique produced by the analyzer stage.
func (s *Session) Analysis() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analysis
}

// RecordAnalysis stores the analyzer result. It fails if no content has been
// captured yet, which keeps the stage ordering explicit. A fresh analysis
// invalidates any benchmark or briefing built on the previous one.
func (s *Session) RecordAnalysis(result string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.content.RawText == "" {
		return fmt.Errorf("cannot record analysis before content is captured")
	}
	s.analysis = result
	s.benchmark = ""
	s.competitors = nil
	s.briefing = ""
	return nil
}

// Benchmark returns the benchmark comparison text, possibly empty.
func (s *Session) Benchmark() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.benchmark
}

// Competitors returns the competitor entries from the last benchmark run.
func (s *Session) Competitors() []competitor.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.competitors
}

// RecordBenchmark stores the benchmark result and its competitor entries.
// Requires a prior analysis.
func (s *Session) RecordBenchmark(result string, entries []competitor.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analysis == "" {
		return fmt.Errorf("cannot record benchmark before an analysis exists")
	}
	s.benchmark = result
	s.competitors = entries
	return nil
}

// Briefing returns the final briefing document, possibly empty.
func (s *Session) Briefing() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.briefing
}

// RecordBriefing stores the composed briefing. Requires a prior analysis.
func (s *Session) RecordBriefing(doc string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analysis == "" {
		return fmt.Errorf("cannot record briefing before an analysis exists")
	}
	s.briefing = doc
	return nil
}

// Stage derives the current pipeline stage from which artifacts are present.
func (s *Session) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.briefing != "":
		return StageBriefed
	case s.benchmark != "":
		return StageBenchmarked
	case s.analysis != "":
		return StageAnalyzed
	case s.content.RawText != "":
		return StageHasContent
	default:
		return StageNoContent
	}
}

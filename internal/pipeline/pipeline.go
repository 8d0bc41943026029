package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Phishman81/seo-content-briefing-generator/internal/analyze"
	"github.com/Phishman81/seo-content-briefing-generator/internal/briefing"
	"github.com/Phishman81/seo-content-briefing-generator/internal/competitor"
	"github.com/Phishman81/seo-content-briefing-generator/internal/config"
	"github.com/Phishman81/seo-content-briefing-generator/internal/extract"
	"github.com/Phishman81/seo-content-briefing-generator/internal/keywords"
	"github.com/Phishman81/seo-content-briefing-generator/internal/llm"
	"github.com/Phishman81/seo-content-briefing-generator/internal/search"
	"github.com/Phishman81/seo-content-briefing-generator/internal/session"
)

// StepResult holds the result of a single pipeline step.
type StepResult struct {
	Name    string
	Summary string
	Warning string
	Err     error
}

// Result holds the results of a full pipeline run.
type Result struct {
	Steps []StepResult
}

// Pipeline sequences the briefing stages over a session: capture ->
// analyze -> (optional) benchmark -> compose.
type Pipeline struct {
	Extractor  *extract.Extractor
	Provider   llm.Provider
	Searcher   search.Searcher
	MaxResults int
}

// New creates a pipeline from configuration.
func New(cfg *config.Config) *Pipeline {
	return &Pipeline{
		Extractor:  extract.NewExtractor(time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second),
		Provider:   llm.CreateProvider(cfg),
		Searcher:   search.CreateSearcher(cfg),
		MaxResults: cfg.Search.MaxResults,
	}
}

// Capture records metadata and captures the user's own content into the
// session. Returns a warning when both URL and text were supplied.
func (p *Pipeline) Capture(sess *session.Session, urlInput, textInput string, meta session.Meta) (string, error) {
	sess.SetMeta(meta)
	return sess.CaptureContent(urlInput, textInput, p.Extractor)
}

// Analyze runs the content critique stage. The session must hold content.
func (p *Pipeline) Analyze(ctx context.Context, sess *session.Session) error {
	content := sess.Content()
	if content.RawText == "" {
		return fmt.Errorf("please provide a URL or direct text first")
	}

	result, err := analyze.AnalyzeContent(ctx, p.Provider, content.RawText, sess.Meta())
	if err != nil {
		return fmt.Errorf("analyzing content: %w", err)
	}
	return sess.RecordAnalysis(result)
}

// Benchmark runs the optional competitor comparison stage. A missing focus
// keyword or search provider yields a warning, not an error, and the searcher
// is never invoked in that case. Search failures degrade to a warning and the
// comparison proceeds with whatever partial results were collected.
func (p *Pipeline) Benchmark(ctx context.Context, sess *session.Session) (warning string, err error) {
	if sess.Analysis() == "" {
		return "", fmt.Errorf("please run the analysis first")
	}

	focusKeyword := sess.Meta().FocusKeyword
	if focusKeyword == "" {
		return "Please provide a focus keyword so the benchmark search can run.", nil
	}
	if p.Searcher == nil {
		return "No search provider is configured; benchmarking is unavailable.", nil
	}

	urls, searchErr := p.Searcher.Search(ctx, focusKeyword, p.MaxResults)
	if searchErr != nil {
		warning = fmt.Sprintf("Search failed: %v", searchErr)
		log.Printf("Benchmark search failed: %v", searchErr)
	}

	entries := competitor.NewAggregator(p.Extractor).Aggregate(urls)

	result, err := analyze.Benchmark(ctx, p.Provider, sess.Content().RawText, entries, sess.Meta())
	if err != nil {
		return warning, fmt.Errorf("benchmarking content: %w", err)
	}
	return warning, sess.RecordBenchmark(result, entries)
}

// Compose runs the briefing stage. The session must hold an analysis; the
// benchmark text may be empty.
func (p *Pipeline) Compose(ctx context.Context, sess *session.Session) error {
	critique := sess.Analysis()
	if critique == "" {
		return fmt.Errorf("please run the analysis first")
	}

	doc, err := briefing.Compose(ctx, p.Provider, sess.Content().RawText, critique, sess.Benchmark(), sess.KeywordRows(), sess.Meta())
	if err != nil {
		return fmt.Errorf("composing briefing: %w", err)
	}
	return sess.RecordBriefing(doc)
}

// Run executes the full pipeline over a fresh session, for one-shot CLI use.
func (p *Pipeline) Run(ctx context.Context, sess *session.Session, urlInput, textInput string, meta session.Meta, rows []keywords.Row, withBenchmark bool) *Result {
	r := &Result{}
	sess.SetKeywordRows(rows)

	log.Println("Step 1: Capturing content...")
	warning, err := p.Capture(sess, urlInput, textInput, meta)
	step := StepResult{Name: "Capture", Warning: warning, Err: err}
	if err == nil {
		content := sess.Content()
		step.Summary = fmt.Sprintf("Captured %d words from %s input", content.WordCount, content.Source)
	}
	r.Steps = append(r.Steps, step)
	if err != nil {
		return r
	}

	log.Println("Step 2: Analyzing content...")
	err = p.Analyze(ctx, sess)
	step = StepResult{Name: "Analyze", Err: err}
	if err == nil {
		step.Summary = fmt.Sprintf("Critique of %d characters produced", len(sess.Analysis()))
	}
	r.Steps = append(r.Steps, step)
	if err != nil {
		return r
	}

	if withBenchmark {
		log.Println("Step 3: Benchmarking against competitors...")
		warning, err = p.Benchmark(ctx, sess)
		step = StepResult{Name: "Benchmark", Warning: warning, Err: err}
		if err == nil {
			step.Summary = fmt.Sprintf("Compared against %d competitor articles", len(sess.Competitors()))
		}
		r.Steps = append(r.Steps, step)
		if err != nil {
			return r
		}
	}

	log.Println("Final step: Composing briefing...")
	err = p.Compose(ctx, sess)
	step = StepResult{Name: "Compose", Err: err}
	if err == nil {
		step.Summary = fmt.Sprintf("Briefing of %d characters composed", len(sess.Briefing()))
	}
	r.Steps = append(r.Steps, step)

	return r
}

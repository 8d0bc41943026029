package analyze

import (
	"context"
	"fmt"
	"strings"

	"github.com/Phishman81/seo-content-briefing-generator/internal/competitor"
	"github.com/Phishman81/seo-content-briefing-generator/internal/llm"
	"github.com/Phishman81/seo-content-briefing-generator/internal/session"
)

// Excerpt bounds keep the benchmark prompt within a predictable size.
const (
	ownContentBound = 1500
	competitorBound = 1000
)

const benchmarkSystem = "You are an experienced SEO and content analyst. You compare multiple texts covering the same topic."

// Benchmark asks the model to compare the user's content against competitor
// articles. Own content is bounded to 1500 characters, each competitor
// excerpt to 1000. Same invocation and failure contract as AnalyzeContent.
func Benchmark(ctx context.Context, provider llm.Provider, ownContent string, competitors []competitor.Entry, meta session.Meta) (string, error) {
	if provider == nil {
		return "", fmt.Errorf("no LLM provider configured")
	}

	var summaries strings.Builder
	for _, c := range competitors {
		fmt.Fprintf(&summaries, "URL: %s\nWord count: %d\nExcerpt:\n%s\n\n", c.URL, c.WordCount, excerpt(c.Text, competitorBound))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "My own article text:\n%s\n\n", excerpt(ownContent, ownContentBound))
	fmt.Fprintf(&sb, "Here are excerpts from articles that rank at the top of search results:\n%s\n", summaries.String())
	sb.WriteString(`Please compare my article with these top-ranking articles:
- Which topics do the competitors cover that my article is missing?
- What text length, keyword focus, and structure are typical for the top articles?
- Where do you see content gaps?
`)
	if !meta.IsZero() {
		fmt.Fprintf(&sb, "\nAdditional meta info: %s\n", meta)
	}

	return provider.Generate(ctx, llm.Request{
		System:      benchmarkSystem,
		User:        sb.String(),
		MaxTokens:   1000,
		Temperature: samplingTemperature,
	})
}

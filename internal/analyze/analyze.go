package analyze

import (
	"context"
	"fmt"
	"strings"

	"github.com/Phishman81/seo-content-briefing-generator/internal/llm"
	"github.com/Phishman81/seo-content-briefing-generator/internal/session"
)

// Moderate non-zero temperature: varied phrasing over determinism.
const samplingTemperature = 0.7

const analyzeSystem = "You are an SEO expert helping to analyze a text for optimization potential."

// AnalyzeContent asks the model for a critique of the user's own content.
// The content and metadata are embedded verbatim. Any provider error
// propagates unrecovered; callers must not proceed to dependent stages.
func AnalyzeContent(ctx context.Context, provider llm.Provider, content string, meta session.Meta) (string, error) {
	if provider == nil {
		return "", fmt.Errorf("no LLM provider configured")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Here is an article text:\n\n%s\n\n", content)
	if !meta.IsZero() {
		fmt.Fprintf(&sb, "\nAdditional info: %s\n", meta)
	}
	sb.WriteString("\nPlease summarize strengths and weaknesses and identify SEO optimization potential.")

	return provider.Generate(ctx, llm.Request{
		System:      analyzeSystem,
		User:        sb.String(),
		MaxTokens:   800,
		Temperature: samplingTemperature,
	})
}

// excerpt bounds s to at most n characters for prompt embedding. Truncation
// happens on rune boundaries so multi-byte input never yields invalid UTF-8.
func excerpt(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

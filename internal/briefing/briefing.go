package briefing

import (
	"context"
	"fmt"
	"strings"

	"github.com/Phishman81/seo-content-briefing-generator/internal/keywords"
	"github.com/Phishman81/seo-content-briefing-generator/internal/llm"
	"github.com/Phishman81/seo-content-briefing-generator/internal/session"
)

// Filename is the deterministic name of the exported briefing file.
const Filename = "SEO-Briefing.txt"

// MIMEType is the content type of the exported briefing.
const MIMEType = "text/plain"

// ownContentBound limits the own-content excerpt embedded into the prompt.
const ownContentBound = 1000

const composeSystem = "You are a professional SEO briefing assistant."

// The briefing always follows this exact six-section outline.
const outlineInstruction = `Please now create a structured SEO copywriter briefing:

1. Short summary of the existing article
2. Content gaps and recommended changes/additions
3. Suggestions for text structure and paragraph topics
4. Keyword recommendations (focus and secondary keywords) including placement
5. Updates based on current trends/information
6. Further SEO notes (e.g. meta data, internal linking, EEAT)

The briefing should be written so that a copywriter can implement it directly.`

// Compose merges the user's content, the critique, the benchmark text (may be
// empty), and an optional keyword table into one prompt and returns the
// resulting briefing document. Any provider error propagates unrecovered.
func Compose(ctx context.Context, provider llm.Provider, ownContent, critique, benchmark string, rows []keywords.Row, meta session.Meta) (string, error) {
	if provider == nil {
		return "", fmt.Errorf("no LLM provider configured")
	}

	own := excerpt(ownContent, ownContentBound)

	var sb strings.Builder
	fmt.Fprintf(&sb, "My own article (short version, max. 1000 characters):\n%s\n\n", own)
	fmt.Fprintf(&sb, "Initial analysis (strengths/weaknesses):\n%s\n\n", critique)
	fmt.Fprintf(&sb, "Benchmark analysis:\n%s\n\n", benchmark)

	if table := keywords.RenderTable(rows); table != "" {
		fmt.Fprintf(&sb, "\nHere are some relevant keywords with search volume:\n%s\n", table)
	}
	if !meta.IsZero() {
		fmt.Fprintf(&sb, "\nContext: %s\n", meta)
	}

	sb.WriteString("\n")
	sb.WriteString(outlineInstruction)

	return provider.Generate(ctx, llm.Request{
		System:      composeSystem,
		User:        sb.String(),
		MaxTokens:   1500,
		Temperature: 0.7,
	})
}

// excerpt bounds s to at most n characters, truncating on rune boundaries.
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

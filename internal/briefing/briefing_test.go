package briefing

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Phishman81/seo-content-briefing-generator/internal/keywords"
	"github.com/Phishman81/seo-content-briefing-generator/internal/llm"
	"github.com/Phishman81/seo-content-briefing-generator/internal/session"
)

type mockProvider struct {
	response string
	lastReq  llm.Request
}

func (m *mockProvider) Generate(_ context.Context, req llm.Request) (string, error) {
	m.lastReq = req
	return m.response, nil
}

func (m *mockProvider) IsConfigured() bool { return true }

func TestCompose(t *testing.T) {
	mock := &mockProvider{response: "1. Summary\n2. Gaps\n3. Structure\n4. Keywords\n5. Trends\n6. Notes"}

	rows := []keywords.Row{{Keyword: "seo audit", SearchVolume: 900}}
	meta := session.Meta{Audience: "founders", Goal: "leads", FocusKeyword: "seo audit"}

	doc, err := Compose(context.Background(), mock, "Own article text.", "The critique.", "The benchmark.", rows, meta)
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	if doc != mock.response {
		t.Errorf("expected briefing passed through, got %q", doc)
	}

	prompt := mock.lastReq.User
	for _, want := range []string{"Own article text.", "The critique.", "The benchmark.", "seo audit,900", "founders"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected %q in compose prompt", want)
		}
	}

	// The six-section outline is fixed.
	for _, section := range []string{"1. Short summary", "2. Content gaps", "3. Suggestions for text structure", "4. Keyword recommendations", "5. Updates based on current trends", "6. Further SEO notes"} {
		if !strings.Contains(prompt, section) {
			t.Errorf("expected outline section %q in prompt", section)
		}
	}

	if mock.lastReq.MaxTokens != 1500 {
		t.Errorf("expected max tokens 1500, got %d", mock.lastReq.MaxTokens)
	}
	if mock.lastReq.Temperature != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", mock.lastReq.Temperature)
	}
}

func TestComposeOwnContentBound(t *testing.T) {
	mock := &mockProvider{response: "ok"}
	long := strings.Repeat("x", 2500)

	if _, err := Compose(context.Background(), mock, long, "c", "", nil, session.Meta{}); err != nil {
		t.Fatalf("compose failed: %v", err)
	}

	prompt := mock.lastReq.User
	if strings.Contains(prompt, strings.Repeat("x", 1001)) {
		t.Error("expected own content truncated to 1000 chars")
	}
	if !strings.Contains(prompt, strings.Repeat("x", 1000)) {
		t.Error("expected 1000-char excerpt present")
	}
}

func TestComposeOwnContentBoundMultiByte(t *testing.T) {
	mock := &mockProvider{response: "ok"}
	long := strings.Repeat("x", 999) + "üö" + strings.Repeat("x", 50)

	if _, err := Compose(context.Background(), mock, long, "c", "", nil, session.Meta{}); err != nil {
		t.Fatalf("compose failed: %v", err)
	}

	prompt := mock.lastReq.User
	if !utf8.ValidString(prompt) {
		t.Fatal("expected prompt to remain valid UTF-8 after truncation")
	}
	if !strings.Contains(prompt, strings.Repeat("x", 999)+"ü") {
		t.Error("expected the 1000th character kept intact")
	}
	if strings.Contains(prompt, "üö") {
		t.Error("expected own content cut after 1000 characters")
	}
}

func TestComposeKeywordTruncation(t *testing.T) {
	mock := &mockProvider{response: "ok"}

	var rows []keywords.Row
	for i := 0; i < 14; i++ {
		rows = append(rows, keywords.Row{Keyword: fmt.Sprintf("term%d", i), SearchVolume: i})
	}

	if _, err := Compose(context.Background(), mock, "own", "critique", "", rows, session.Meta{}); err != nil {
		t.Fatalf("compose failed: %v", err)
	}

	prompt := mock.lastReq.User
	if !strings.Contains(prompt, "term9,") {
		t.Error("expected tenth keyword row in prompt")
	}
	if strings.Contains(prompt, "term10,") {
		t.Error("expected eleventh keyword row truncated from prompt")
	}
}

func TestComposeWithoutBenchmarkOrKeywords(t *testing.T) {
	mock := &mockProvider{response: "ok"}
	if _, err := Compose(context.Background(), mock, "own", "critique", "", nil, session.Meta{}); err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	if strings.Contains(mock.lastReq.User, "relevant keywords with search volume") {
		t.Error("expected no keyword section without rows")
	}
}

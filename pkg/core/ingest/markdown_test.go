package ingest

import (
	"strings"
	"testing"
	"time"

	"agentic_memo/pkg/models"
)

const sampleMarkdown = `# Acme Robotics Deep Dive

Acme Robotics builds autonomous warehouse robots.

## Funding

Acme raised $5M Seed in 2020.

` + "```go\nfmt.Println(\"code noise\")\n```" + `

- 500 paying customers
- 12 countries
`

func TestMarkdownToText(t *testing.T) {
	text := MarkdownToText(sampleMarkdown)

	for _, want := range []string{"Acme Robotics Deep Dive", "autonomous warehouse robots", "$5M Seed", "500 paying customers"} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "code noise") {
		t.Errorf("code block survived:\n%s", text)
	}
	if !strings.Contains(text, "\n\n") {
		t.Error("block boundaries lost")
	}
}

func TestMarkdownToText_Empty(t *testing.T) {
	if text := MarkdownToText(""); text != "" {
		t.Errorf("empty source produced %q", text)
	}
}

func TestMarkdownToRawDoc(t *testing.T) {
	doc := MarkdownToRawDoc("deck://acme/slide-3", sampleMarkdown, models.SourceSlide, time.Now())
	if doc.Title != "Acme Robotics Deep Dive" {
		t.Errorf("title = %q, want first heading", doc.Title)
	}
	if doc.SourceType != models.SourceSlide {
		t.Errorf("source type = %q", doc.SourceType)
	}
	if doc.URL != "deck://acme/slide-3" {
		t.Errorf("url = %q", doc.URL)
	}
}

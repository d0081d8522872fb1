package ingest

import (
	"strings"
	"testing"
	"time"

	"agentic_memo/pkg/models"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>Acme Robotics — About</title>
  <style>body { color: red; }</style>
  <script>console.log("tracking");</script>
</head>
<body>
  <nav><a href="/">Home</a><a href="/pricing">Pricing</a></nav>
  <h1>About Acme Robotics</h1>
  <p>Acme Robotics builds autonomous warehouse robots.</p>
  <p>Acme raised $5M Seed in 2020.</p>
  <footer>© 2024 Acme Robotics</footer>
</body>
</html>`

func TestHTMLToRawDoc(t *testing.T) {
	fetched := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	doc, err := HTMLToRawDoc("https://acme.example/about", samplePage, models.SourceSite, fetched)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.URL != "https://acme.example/about" || doc.SourceType != models.SourceSite {
		t.Errorf("doc identity wrong: %+v", doc)
	}
	if doc.Title != "Acme Robotics — About" {
		t.Errorf("title = %q", doc.Title)
	}
	if !doc.FetchedAt.Equal(fetched) {
		t.Errorf("fetched_at = %v", doc.FetchedAt)
	}

	for _, want := range []string{"About Acme Robotics", "autonomous warehouse robots", "$5M Seed"} {
		if !strings.Contains(doc.Text, want) {
			t.Errorf("text missing %q:\n%s", want, doc.Text)
		}
	}
	for _, junk := range []string{"console.log", "color: red", "Home", "© 2024"} {
		if strings.Contains(doc.Text, junk) {
			t.Errorf("noise %q survived:\n%s", junk, doc.Text)
		}
	}

	// Paragraph boundaries preserved for the chunker.
	if !strings.Contains(doc.Text, "\n\n") {
		t.Error("block boundaries lost")
	}
}

func TestHTMLToRawDoc_PlainBody(t *testing.T) {
	doc, err := HTMLToRawDoc("https://x.co", "<html><body>Just some loose text.</body></html>", models.SourceSearch, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(doc.Text, "Just some loose text.") {
		t.Errorf("fallback body text lost: %q", doc.Text)
	}
}

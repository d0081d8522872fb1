package chunker

import (
	"strings"
	"testing"
	"time"

	"agentic_memo/pkg/models"
)

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func TestSplit_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\n", "\t \n"} {
		if chunks := Split(input, 100); len(chunks) != 0 {
			t.Errorf("Split(%q) = %d chunks, want 0", input, len(chunks))
		}
	}
}

func TestSplit_RoundTrip(t *testing.T) {
	text := "First paragraph about the company.\n\nSecond paragraph with more detail.\n\nThird paragraph. It has two sentences.\n\nFourth."
	chunks := Split(text, 60)

	joined := normalize(strings.Join(chunks, " "))
	if joined != normalize(text) {
		t.Errorf("round trip mismatch:\n got:  %q\n want: %q", joined, normalize(text))
	}
}

func TestSplit_RespectsMaxSize(t *testing.T) {
	var paras []string
	for i := 0; i < 20; i++ {
		paras = append(paras, "A paragraph that is reasonably short.")
	}
	text := strings.Join(paras, "\n\n")

	for _, chunk := range Split(text, 100) {
		if len(chunk) > 100 {
			t.Errorf("chunk exceeds limit: %d bytes", len(chunk))
		}
	}
}

func TestSplit_PacksParagraphsGreedily(t *testing.T) {
	text := "Alpha.\n\nBeta.\n\nGamma."
	chunks := Split(text, 1000)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1 packed chunk", len(chunks))
	}
	if !strings.Contains(chunks[0], "Alpha.") || !strings.Contains(chunks[0], "Gamma.") {
		t.Errorf("packed chunk missing paragraphs: %q", chunks[0])
	}
}

func TestSplit_CRLFParagraphBoundaries(t *testing.T) {
	text := "First paragraph.\r\n\r\nSecond paragraph."
	chunks := Split(text, 20)

	// Each paragraph exceeds the packing limit together, so Windows
	// line endings must still yield two paragraph chunks.
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2: %q", len(chunks), chunks)
	}
	if chunks[0] != "First paragraph." || chunks[1] != "Second paragraph." {
		t.Errorf("paragraph boundaries lost on CRLF input: %q", chunks)
	}
}

func TestSplit_OversizedParagraphFallsBackToSentences(t *testing.T) {
	sentence := "This sentence talks about growth and traction in some detail."
	para := strings.TrimSpace(strings.Repeat(sentence+" ", 10))
	chunks := Split(para, 150)

	if len(chunks) < 2 {
		t.Fatalf("oversized paragraph not split, got %d chunks", len(chunks))
	}
	for _, chunk := range chunks {
		if len(chunk) > 150 {
			t.Errorf("sentence-packed chunk exceeds limit: %d bytes", len(chunk))
		}
		// Never mid-word: every chunk ends at a word boundary.
		if strings.HasSuffix(chunk, "-") {
			t.Errorf("chunk ends mid-word: %q", chunk)
		}
	}

	joined := normalize(strings.Join(chunks, " "))
	if joined != normalize(para) {
		t.Errorf("sentence split lost content")
	}
}

func TestSplit_OversizedSentenceKeptWhole(t *testing.T) {
	long := strings.TrimSuffix(strings.Repeat("word ", 60), " ") // no terminator, one "sentence"
	chunks := Split(long, 100)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1 (oversized sentence stays whole)", len(chunks))
	}
	if chunks[0] != long {
		t.Errorf("oversized sentence was altered")
	}
}

func TestSentences_AvoidsDecimalSplit(t *testing.T) {
	got := Sentences("Revenue hit $5.2M in 2021. Growth continued.")
	if len(got) != 2 {
		t.Fatalf("got %d sentences, want 2: %v", len(got), got)
	}
	if !strings.Contains(got[0], "$5.2M") {
		t.Errorf("decimal split inside amount: %v", got)
	}
}

func TestChunkDocs(t *testing.T) {
	docs := []models.RawDoc{
		{URL: "https://a.example", Text: "Para one.\n\nPara two.", SourceType: models.SourceSite, FetchedAt: time.Now()},
		{URL: "https://b.example", Text: "", SourceType: models.SourceSearch},
		{URL: "https://c.example", Text: "Only paragraph.", SourceType: models.SourceSite},
	}

	chunks := ChunkDocs(docs, 12)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}

	// Empty doc contributes nothing; back-references point at parents.
	for _, c := range chunks {
		if c.Doc == nil {
			t.Fatal("chunk missing doc back-reference")
		}
		if c.Doc.URL == "https://b.example" {
			t.Errorf("empty doc produced a chunk")
		}
	}
	if chunks[0].Index != 0 || chunks[1].Index != 1 {
		t.Errorf("chunk indices not scoped per doc: %d, %d", chunks[0].Index, chunks[1].Index)
	}
	if chunks[2].Doc.URL != "https://c.example" || chunks[2].Index != 0 {
		t.Errorf("third chunk misattributed: %s idx %d", chunks[2].Doc.URL, chunks[2].Index)
	}
}

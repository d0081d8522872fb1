package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"agentic_memo/pkg/core/extract"
	"agentic_memo/pkg/models"
)

type MockRepository struct {
	SaveFunc func(ctx context.Context, doc *models.CompanyDoc) error
	saved    *models.CompanyDoc
}

func (m *MockRepository) Save(ctx context.Context, doc *models.CompanyDoc) error {
	m.saved = doc
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, doc)
	}
	return nil
}

func ruleOnlyConfig() Config {
	cfg := DefaultConfig()
	cfg.EnableLLM = false
	cfg.BatchTimeoutSec = 30
	cfg.MinCallIntervalMS = 0
	cfg.MinDocLength = 10
	return cfg
}

func TestRun_FundingScenario(t *testing.T) {
	docs := []models.RawDoc{{
		URL:        "https://x.co",
		Text:       "X raised $5M Seed in 2020. X raised $25M Series A in 2021.",
		SourceType: models.SourceSite,
		FetchedAt:  time.Now().UTC(),
	}}

	orch, err := NewOrchestrator(context.Background(), ruleOnlyConfig())
	if err != nil {
		t.Fatalf("orchestrator: %v", err)
	}

	doc, err := orch.Run(context.Background(), "X", docs)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	funding := doc.Section(models.TopicFunding)
	if len(funding.Bullets) != 2 {
		t.Errorf("funding bullets = %v, want 2", funding.Bullets)
	}
	if len(funding.Citations) != 2 {
		t.Errorf("funding citations = %d, want 2 (same url, distinct snippets)", len(funding.Citations))
	}
	if funding.Text == "" {
		t.Error("funding narrative empty")
	}
	if doc.IsMissing(models.TopicFunding) {
		t.Error("funding wrongly listed as missing")
	}
	for _, c := range funding.Citations {
		if c.URL != "https://x.co" {
			t.Errorf("citation url = %q", c.URL)
		}
	}
}

func TestRun_AlwaysReturnsCompleteDocument(t *testing.T) {
	cfg := ruleOnlyConfig()
	cfg.GenericTopics = []string{"introduction"} // placeholders for one topic only

	orch, err := NewOrchestrator(context.Background(), cfg)
	if err != nil {
		t.Fatalf("orchestrator: %v", err)
	}

	// Empty batch: nothing to extract, yet the document is complete.
	doc, err := orch.Run(context.Background(), "X", nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(doc.Sections) != len(models.AllTopics) {
		t.Fatalf("incomplete document: %d sections", len(doc.Sections))
	}

	intro := doc.Section(models.TopicIntroduction)
	if !strings.Contains(intro.Text, "[No verified data]") {
		t.Errorf("configured placeholder absent: %q", intro.Text)
	}
	if doc.IsMissing(models.TopicIntroduction) {
		t.Error("placeholder-backed topic flagged missing")
	}
	// Every other topic is genuinely missing.
	if want := len(models.AllTopics) - 1; len(doc.MissingTopics) != want {
		t.Errorf("missing topics = %d, want %d", len(doc.MissingTopics), want)
	}
}

func TestRun_EmptyDocYieldsNothing(t *testing.T) {
	cfg := ruleOnlyConfig()
	cfg.GenericTopics = []string{"why_now"}

	orch, _ := NewOrchestrator(context.Background(), cfg)
	docs := []models.RawDoc{{URL: "https://x.co", Text: "   ", SourceType: models.SourceSite}}

	doc, err := orch.Run(context.Background(), "X", docs)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// Whitespace-only input is not an error; it just contributes nothing.
	if !doc.IsMissing(models.TopicFunding) {
		t.Error("no-input run should leave funding missing")
	}
}

func TestRun_PersistsToRepository(t *testing.T) {
	repo := &MockRepository{}
	orch, _ := NewOrchestrator(context.Background(), ruleOnlyConfig())
	orch.SetRepository(repo)

	doc, err := orch.Run(context.Background(), "X", nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if repo.saved == nil || repo.saved.RunID != doc.RunID {
		t.Error("document not handed to the repository")
	}
}

func TestRun_RepositoryFailureDoesNotFailRun(t *testing.T) {
	repo := &MockRepository{SaveFunc: func(context.Context, *models.CompanyDoc) error {
		return context.DeadlineExceeded
	}}
	orch, _ := NewOrchestrator(context.Background(), ruleOnlyConfig())
	orch.SetRepository(repo)

	doc, err := orch.Run(context.Background(), "X", nil)
	if err != nil {
		t.Fatalf("persistence failure leaked out of Run: %v", err)
	}
	if doc == nil {
		t.Fatal("no document returned")
	}
}

func TestFilterDocs(t *testing.T) {
	docs := []models.RawDoc{
		{URL: "https://a", Text: "tiny"},
		{URL: "https://b", Title: "How to make a pitch deck template", Text: strings.Repeat("Generic tutorial content with no company mention. ", 5)},
		{URL: "https://c", Text: "Acme Robotics builds autonomous warehouse robots for retailers around the world."},
	}

	kept := filterDocs(docs, "Acme Robotics", 50)
	if len(kept) != 1 || kept[0].URL != "https://c" {
		t.Errorf("filter kept %v", kept)
	}
}

func TestRun_CandidateOrderInvariantAcrossWorkerCounts(t *testing.T) {
	docs := []models.RawDoc{
		{URL: "https://a.co", Text: "X raised $5M Seed in 2020.", SourceType: models.SourceSite},
		{URL: "https://b.co", Text: "X raised $25M Series A in 2021.", SourceType: models.SourceSearch},
		{URL: "https://c.co", Text: "X serves 500 customers with strong monthly adoption.", SourceType: models.SourceSite},
	}

	run := func(workers int) *models.CompanyDoc {
		cfg := ruleOnlyConfig()
		cfg.Workers = workers
		orch, err := NewOrchestrator(context.Background(), cfg)
		if err != nil {
			t.Fatalf("orchestrator: %v", err)
		}
		doc, err := orch.Run(context.Background(), "X", docs)
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		return doc
	}

	serial := run(1)
	parallel := run(8)

	for _, topic := range models.AllTopics {
		a, b := serial.Section(topic), parallel.Section(topic)
		if a.Text != b.Text {
			t.Errorf("topic %s: narrative differs across worker counts", topic)
		}
		if len(a.Bullets) != len(b.Bullets) || len(a.Citations) != len(b.Citations) {
			t.Errorf("topic %s: bullet/citation sets differ across worker counts", topic)
		}
		for i := range a.Bullets {
			if a.Bullets[i] != b.Bullets[i] {
				t.Errorf("topic %s: bullet order differs", topic)
			}
		}
	}
}

// Strategy failure mid-run must degrade, not abort: an erroring first
// strategy plus a healthy second one still produces evidence.
func TestRun_WithInjectedCascade(t *testing.T) {
	llm := failingStrategy("llm", context.DeadlineExceeded)
	cascade := NewCascade([]extract.Strategy{llm, tractionStrategy()}, extract.NewGenericStrategy(nil), nil, 2)

	orch := NewOrchestratorWithCascade(ruleOnlyConfig(), cascade)
	doc, err := orch.Run(context.Background(), "X", []models.RawDoc{
		{URL: "https://x.co", Text: "500 paying customers.", SourceType: models.SourceSite},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	traction := doc.Section(models.TopicTraction)
	if len(traction.Citations) != 1 {
		t.Errorf("degraded run lost its rule-based evidence: %+v", traction)
	}
}

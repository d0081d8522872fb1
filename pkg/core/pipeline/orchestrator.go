package pipeline

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/time/rate"

	"agentic_memo/pkg/core/chunker"
	"agentic_memo/pkg/core/extract"
	"agentic_memo/pkg/core/llm"
	"agentic_memo/pkg/core/synthesis"
	"agentic_memo/pkg/models"
)

// Repository persists finished company documents for downstream
// collaborators. Optional: a nil repository skips persistence.
type Repository interface {
	Save(ctx context.Context, doc *models.CompanyDoc) error
}

// Orchestrator manages the end-to-end evidence flow for one subject:
// RawDocs -> Chunker -> strategy cascade -> merge -> assembled doc.
type Orchestrator struct {
	config  Config
	cascade *Cascade
	merger  *synthesis.MergeEngine
	repo    Repository
}

// NewOrchestrator assembles the engine from a config. Strategy
// construction honors the capability toggles: a disabled or
// credential-less LLM strategy is simply absent from the cascade.
func NewOrchestrator(ctx context.Context, cfg Config) (*Orchestrator, error) {
	var strategies []extract.Strategy

	if cfg.EnableLLM {
		provider, err := buildProvider(ctx, cfg)
		if err != nil {
			return nil, err
		}
		s := extract.NewLLMStrategy(provider)
		s.Model = cfg.Model
		s.Retry = extract.RetryPolicy{
			MaxAttempts: cfg.MaxAttempts,
			BaseDelay:   cfg.BaseDelay(),
			Retryable:   extract.IsTransient,
		}
		strategies = append(strategies, s)
	}
	if cfg.EnableRules {
		strategies = append(strategies, extract.NewRuleStrategy())
	}

	generic := extract.NewGenericStrategy(cfg.PlaceholderTopics())

	var limiter *rate.Limiter
	if interval := cfg.CallInterval(); interval > 0 {
		limiter = rate.NewLimiter(rate.Every(interval), 1)
	}

	return &Orchestrator{
		config:  cfg,
		cascade: NewCascade(strategies, generic, limiter, cfg.Workers),
		merger:  synthesis.NewMergeEngine(),
	}, nil
}

// NewOrchestratorWithCascade injects a prebuilt cascade; used by tests
// and by callers that assemble their own strategy stack.
func NewOrchestratorWithCascade(cfg Config, cascade *Cascade) *Orchestrator {
	return &Orchestrator{
		config:  cfg,
		cascade: cascade,
		merger:  synthesis.NewMergeEngine(),
	}
}

// SetRepository injects a persistence collaborator.
func (o *Orchestrator) SetRepository(repo Repository) {
	o.repo = repo
}

func buildProvider(ctx context.Context, cfg Config) (llm.Provider, error) {
	switch cfg.Provider {
	case "", "gemini":
		return &llm.GeminiProvider{Model: cfg.Model}, nil
	case "googleai":
		return llm.NewGoogleAIProvider(ctx, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// Run executes one analysis run. It always returns a complete
// CompanyDoc: every failure category inside the engine degrades to
// fewer candidates, and the worst case is a document whose every topic
// sits in MissingTopics. The returned error only reflects persistence
// problems, never extraction ones.
func (o *Orchestrator) Run(ctx context.Context, subject string, docs []models.RawDoc) (*models.CompanyDoc, error) {
	fmt.Printf("[PIPELINE] starting run for %s with %d raw documents\n", subject, len(docs))

	kept := filterDocs(docs, subject, o.config.MinDocLength)
	chunks := chunker.ChunkDocs(kept, o.config.ChunkSize)
	fmt.Printf("[PIPELINE] %d documents kept, %d chunks queued\n", len(kept), len(chunks))

	runCtx := ctx
	if timeout := o.config.BatchTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	candidates := o.cascade.ExtractAll(runCtx, subject, chunks)
	sections := o.merger.MergeAll(candidates)
	doc := synthesis.Assemble(subject, sections)

	fmt.Printf("[PIPELINE] run %s complete: %d/%d topics populated\n",
		doc.RunID, len(models.AllTopics)-len(doc.MissingTopics), len(models.AllTopics))

	if o.repo != nil {
		// Persistence failures must not invalidate the finished doc.
		if err := o.repo.Save(ctx, doc); err != nil {
			log.Printf("[PIPELINE] warning: failed to persist memo for %s: %v", subject, err)
		}
	}

	return doc, nil
}

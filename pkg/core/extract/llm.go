package extract

import (
	"context"
	"fmt"
	"log"

	"agentic_memo/pkg/core/chunker"
	"agentic_memo/pkg/core/llm"
)

// LLMStrategy classifies chunks with a model provider. External-service
// failures are retried per the policy and then surfaced as a strategy
// error for the cascade to absorb; a response that is not valid JSON
// for a recognized topic subset is a zero-result, never a crash.
type LLMStrategy struct {
	Provider llm.Provider
	Retry    RetryPolicy
	Model    string
}

// NewLLMStrategy wires a provider with the default retry policy.
func NewLLMStrategy(provider llm.Provider) *LLMStrategy {
	return &LLMStrategy{
		Provider: provider,
		Retry:    DefaultRetryPolicy(),
	}
}

func (s *LLMStrategy) Name() string { return "llm" }

// Throttled opts the strategy into the cascade's shared inter-call
// gate; every Extract hits an external service.
func (s *LLMStrategy) Throttled() bool { return true }

// Extract sends one classification request for the chunk.
func (s *LLMStrategy) Extract(ctx context.Context, subject string, chunk chunker.Chunk) (Candidates, error) {
	if s.Provider == nil {
		return nil, ErrStrategyUnavailable
	}
	if cred, ok := s.Provider.(llm.HasCredential); ok && !cred.Available() {
		return nil, ErrStrategyUnavailable
	}

	prompt := BuildExtractionPrompt(subject, chunk)
	options := map[string]interface{}{
		"response_format": "json",
	}
	if s.Model != "" {
		options["model"] = s.Model
	}

	var raw string
	err := s.Retry.Do(ctx, func() error {
		var callErr error
		raw, callErr = s.Provider.GenerateResponse(ctx, prompt, SystemPrompt, options)
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("llm extraction failed: %w", err)
	}

	cands, ok := parseResponse(raw, chunk)
	if !ok {
		log.Printf("[EXTRACT] unparseable classifier response for chunk %d of %s, treating as empty", chunk.Index, chunkURL(chunk))
		return Candidates{}, nil
	}
	return cands, nil
}

func chunkURL(chunk chunker.Chunk) string {
	if chunk.Doc == nil {
		return "<no source>"
	}
	return chunk.Doc.URL
}

// Package extract classifies chunk content into memo topics. It defines
// the Strategy interface plus three implementations: an LLM-backed
// classifier, a deterministic rule/pattern classifier, and a generic
// placeholder used only when the data-driven strategies produce nothing
// for a topic.
package extract

import (
	"context"
	"errors"

	"agentic_memo/pkg/core/chunker"
	"agentic_memo/pkg/models"
)

// Candidate is one unmerged, chunk-scoped extraction result for one
// topic. The zero-valued Citation (empty URL) means "no provenance",
// which only the generic placeholder is allowed to produce.
type Candidate struct {
	Text     string
	Bullets  []string
	Metrics  map[string]string
	Citation models.Citation
}

// Candidates maps a topic to the candidates a strategy produced for it.
type Candidates map[models.Topic][]Candidate

// Empty reports whether no topic received any candidate.
func (c Candidates) Empty() bool {
	for _, list := range c {
		if len(list) > 0 {
			return false
		}
	}
	return true
}

// Add appends a candidate for a topic.
func (c Candidates) Add(t models.Topic, cand Candidate) {
	c[t] = append(c[t], cand)
}

// Merge folds other into c, preserving per-topic ordering.
func (c Candidates) Merge(other Candidates) {
	for t, list := range other {
		c[t] = append(c[t], list...)
	}
}

// ErrStrategyUnavailable marks a strategy that cannot run in this
// environment (e.g. no API credential configured). The cascade skips
// it without counting the chunk as a failure.
var ErrStrategyUnavailable = errors.New("extraction strategy unavailable")

// Strategy classifies a chunk's content into topic candidates.
// Implementations must be idempotent for identical (subject, chunk)
// pairs up to external-service nondeterminism, and must report
// external failures as errors rather than panicking. A nil error with
// an empty result set is a valid outcome.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, subject string, chunk chunker.Chunk) (Candidates, error)
}

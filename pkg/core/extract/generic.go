package extract

import (
	"context"
	"fmt"
	"strings"

	"agentic_memo/pkg/core/chunker"
	"agentic_memo/pkg/models"
)

// GenericStrategy ignores chunk content entirely and produces one
// clearly-labeled placeholder candidate per configured topic. The
// cascade applies it batch-wide, only to topics that ended the run
// with no data-driven candidates. Placeholders deliberately carry no
// citation — citations are reserved for verifiable sources.
type GenericStrategy struct {
	Topics []models.Topic
}

// NewGenericStrategy covers every topic unless a subset is given.
func NewGenericStrategy(topics []models.Topic) *GenericStrategy {
	if len(topics) == 0 {
		topics = models.AllTopics
	}
	return &GenericStrategy{Topics: topics}
}

func (s *GenericStrategy) Name() string { return "generic" }

// Extract returns the static placeholder set. The chunk argument is
// unused; it exists only to satisfy the Strategy interface.
func (s *GenericStrategy) Extract(ctx context.Context, subject string, chunk chunker.Chunk) (Candidates, error) {
	out := Candidates{}
	for _, t := range s.Topics {
		out.Add(t, Candidate{Text: PlaceholderText(subject, t)})
	}
	return out, nil
}

// Covers reports whether the strategy is configured for a topic.
func (s *GenericStrategy) Covers(t models.Topic) bool {
	for _, topic := range s.Topics {
		if topic == t {
			return true
		}
	}
	return false
}

// PlaceholderText renders the unmistakable no-evidence marker for a
// topic. Downstream renderers rely on the leading tag to style these
// differently from sourced content.
func PlaceholderText(subject string, t models.Topic) string {
	label := strings.ReplaceAll(string(t), "_", " ")
	return fmt.Sprintf("[No verified data] No source material covering %s was found for %s. This text is an engine-generated placeholder and carries no citation.", label, subject)
}

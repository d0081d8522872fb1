// Package synthesis turns per-chunk extraction candidates into the
// final per-topic sections and assembles the canonical company
// document. Merging is deliberately decoupled from extraction:
// extraction produces immutable chunk-scoped candidates, synthesis is
// a pure recomputation over them.
//
// The merge guarantees:
//  1. Order independence: the output section is identical for any
//     permutation of the candidate list (candidates are canonically
//     ordered before deduplication).
//  2. Idempotence: re-merging an already-merged section as a single
//     candidate changes nothing.
//  3. No lost provenance: the citation set is the union of every
//     candidate's citation, deduplicated by URL + snippet.
package synthesis

import (
	"sort"
	"strings"

	"agentic_memo/pkg/core/extract"
	"agentic_memo/pkg/models"
)

// MergeEngine combines all candidates for one topic into one Section.
// It never fails: an empty candidate list yields an empty Section,
// which the assembler records as missing.
type MergeEngine struct{}

func NewMergeEngine() *MergeEngine { return &MergeEngine{} }

// Merge builds the final section for a topic from its candidates.
func (e *MergeEngine) Merge(topic models.Topic, candidates []extract.Candidate) models.Section {
	if len(candidates) == 0 {
		return models.Section{}
	}

	ordered := canonicalOrder(candidates)

	var section models.Section

	// Narrative: non-empty texts in canonical order, exact duplicates
	// (after whitespace normalization) collapsed, paragraph-joined.
	var paragraphs []string
	seenText := map[string]bool{}
	for _, c := range ordered {
		if c.Text == "" {
			continue
		}
		key := normalizeSpace(c.Text)
		if key == "" || seenText[key] {
			continue
		}
		seenText[key] = true
		paragraphs = append(paragraphs, strings.TrimSpace(c.Text))
	}
	section.Text = strings.Join(paragraphs, "\n\n")

	// Bullets: flattened, deduplicated case- and whitespace-
	// insensitively, first occurrence kept verbatim.
	seenBullet := map[string]bool{}
	for _, c := range ordered {
		for _, b := range c.Bullets {
			b = strings.TrimSpace(b)
			if b == "" {
				continue
			}
			key := strings.ToLower(normalizeSpace(b))
			if seenBullet[key] {
				continue
			}
			seenBullet[key] = true
			section.Bullets = append(section.Bullets, b)
		}
	}

	// Metrics: union, first value wins per key.
	for _, c := range ordered {
		for name, value := range c.Metrics {
			if section.Metrics == nil {
				section.Metrics = map[string]string{}
			}
			if _, exists := section.Metrics[name]; !exists {
				section.Metrics[name] = value
			}
		}
	}

	// Citations: union by the Citation identity rule. Placeholder
	// candidates carry a zero citation, which is skipped.
	seenCite := map[string]bool{}
	for _, c := range ordered {
		cite := c.Citation
		if cite.URL == "" && cite.Snippet == "" {
			continue
		}
		if seenCite[cite.Key()] {
			continue
		}
		seenCite[cite.Key()] = true
		section.Citations = append(section.Citations, cite)
	}

	return section
}

// MergeAll merges every topic's candidate list. Topics absent from the
// input still get a (empty) section so no topic is silently dropped.
func (e *MergeEngine) MergeAll(results extract.Candidates) map[models.Topic]models.Section {
	sections := make(map[models.Topic]models.Section, len(models.AllTopics))
	for _, topic := range models.AllTopics {
		sections[topic] = e.Merge(topic, results[topic])
	}
	return sections
}

// canonicalOrder returns the candidates sorted by a stable content key
// so the merge result does not depend on chunk processing order.
func canonicalOrder(candidates []extract.Candidate) []extract.Candidate {
	ordered := make([]extract.Candidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return candidateKey(ordered[i]) < candidateKey(ordered[j])
	})
	return ordered
}

// candidateKey orders first by normalized content, then by the raw
// spellings and metrics: two candidates that dedup to the same
// normalized form must still sort identically under any permutation,
// otherwise which spelling survives would depend on input order.
func candidateKey(c extract.Candidate) string {
	rawBullets := strings.Join(c.Bullets, "|")
	return strings.Join([]string{
		c.Citation.URL,
		c.Citation.Snippet,
		normalizeSpace(c.Text),
		strings.ToLower(normalizeSpace(rawBullets)),
		c.Text,
		rawBullets,
		metricsKey(c.Metrics),
	}, "\x00")
}

func metricsKey(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(m[name])
		b.WriteByte('\x00')
	}
	return b.String()
}

// normalizeSpace collapses all runs of whitespace to single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Package models defines the shared data model for the research memo
// pipeline: raw source documents coming in from scraping collaborators,
// per-topic evidence sections, and the final structured company document
// handed to rendering and export collaborators.
package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// =============================================================================
// SOURCE TYPES
// =============================================================================

// SourceType identifies the kind of collaborator that produced a RawDoc.
type SourceType string

const (
	SourceSite    SourceType = "site"    // Scraped company website page
	SourceSearch  SourceType = "search"  // Search-result snippet
	SourceProfile SourceType = "profile" // Founder / team profile page
	SourceSlide   SourceType = "slide"   // Pitch deck slide text (OCR)
	SourceGeneric SourceType = "generic" // Engine-produced placeholder
)

// =============================================================================
// TOPICS
// =============================================================================

// Topic is one of the fixed set of knowledge categories the final
// document is organized by.
type Topic string

const (
	TopicIntroduction  Topic = "introduction"
	TopicProblem       Topic = "problem"
	TopicSolution      Topic = "solution"
	TopicProduct       Topic = "product"
	TopicTraction      Topic = "traction"
	TopicBusinessModel Topic = "business_model"
	TopicMarket        Topic = "market"
	TopicTeam          Topic = "team"
	TopicCompetition   Topic = "competition"
	TopicFunding       Topic = "funding"
	TopicFinancials    Topic = "financials"
	TopicWhyNow        Topic = "why_now"
)

// AllTopics is the canonical topic ordering used for the assembled
// document and the missing-topic report.
var AllTopics = []Topic{
	TopicIntroduction,
	TopicProblem,
	TopicSolution,
	TopicProduct,
	TopicTraction,
	TopicBusinessModel,
	TopicMarket,
	TopicTeam,
	TopicCompetition,
	TopicFunding,
	TopicFinancials,
	TopicWhyNow,
}

// ParseTopic maps a raw string (e.g. a key from an LLM response) to a
// known Topic. Returns false for anything outside the enumeration.
func ParseTopic(s string) (Topic, bool) {
	t := Topic(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllTopics {
		if t == known {
			return known, true
		}
	}
	return "", false
}

// =============================================================================
// RAW DOCUMENT
// =============================================================================

// RawDoc is one ingested source unit. Immutable once created; produced
// by scraping / search / OCR collaborators upstream of the engine.
type RawDoc struct {
	URL        string     `json:"url"` // May be a pseudo-URL, e.g. a slide reference
	Title      string     `json:"title,omitempty"`
	Text       string     `json:"text"`
	SourceType SourceType `json:"source_type"`
	FetchedAt  time.Time  `json:"fetched_at"`
}

// =============================================================================
// CITATION
// =============================================================================

// Citation links a claim back to its originating RawDoc. Value type;
// equality for deduplication is by URL plus Snippet.
type Citation struct {
	URL        string     `json:"url"`
	SourceType SourceType `json:"source_type"`
	Timestamp  time.Time  `json:"timestamp"`
	Snippet    string     `json:"snippet,omitempty"` // Exact substring supporting the claim
}

// Key returns the deduplication identity of the citation.
func (c Citation) Key() string {
	return c.URL + "\x00" + c.Snippet
}

// NewCitation builds a citation for a snippet of a raw document,
// truncating the snippet to keep citations compact. The cut backs off
// to a rune boundary so the snippet stays valid UTF-8.
func NewCitation(doc *RawDoc, snippet string) Citation {
	const maxSnippet = 200
	if len(snippet) > maxSnippet {
		cut := maxSnippet
		for cut > 0 && !utf8.RuneStart(snippet[cut]) {
			cut--
		}
		snippet = snippet[:cut] + "..."
	}
	return Citation{
		URL:        doc.URL,
		SourceType: doc.SourceType,
		Timestamp:  doc.FetchedAt,
		Snippet:    snippet,
	}
}

// =============================================================================
// SECTION (one topic's merged knowledge)
// =============================================================================

// Section holds everything known about one topic for one company:
// a prose narrative, deduplicated fact bullets, extracted metrics and
// the full citation set backing the claims. Sections are built only by
// the merge engine and never mutated afterwards.
type Section struct {
	Text      string            `json:"text,omitempty"`
	Bullets   []string          `json:"bullets,omitempty"`
	Metrics   map[string]string `json:"metrics,omitempty"`
	Citations []Citation        `json:"citations,omitempty"`
}

// HasContent reports whether the section carries any evidence at all.
// A section with no text, no bullets and no citations is "missing".
func (s Section) HasContent() bool {
	return s.Text != "" || len(s.Bullets) > 0 || len(s.Citations) > 0
}

// =============================================================================
// COMPANY DOCUMENT (terminal artifact of one run)
// =============================================================================

// CompanyDoc is the canonical output of one analysis run: the subject
// identity plus exactly one Section per topic in AllTopics. Topics whose
// section is fully empty are listed in MissingTopics — that list is the
// only representation of "absence of evidence" in the system.
type CompanyDoc struct {
	RunID         string            `json:"run_id"`
	Name          string            `json:"name"`
	GeneratedAt   time.Time         `json:"generated_at"`
	Sections      map[Topic]Section `json:"sections"`
	MissingTopics []Topic           `json:"missing_topics"`
}

// Section returns the record for a topic. Every topic in AllTopics is
// present in an assembled document, so the zero value only appears for
// keys outside the enumeration.
func (d *CompanyDoc) Section(t Topic) Section {
	return d.Sections[t]
}

// IsMissing reports whether a topic ended the run with no evidence.
func (d *CompanyDoc) IsMissing(t Topic) bool {
	for _, m := range d.MissingTopics {
		if m == t {
			return true
		}
	}
	return false
}

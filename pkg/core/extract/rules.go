package extract

import (
	"context"
	"regexp"
	"strings"

	"agentic_memo/pkg/core/chunker"
	"agentic_memo/pkg/models"
)

// RuleStrategy classifies paragraphs with a fixed keyword and pattern
// library. It is fully deterministic, needs no external service, and
// always succeeds — possibly with zero candidates.
type RuleStrategy struct{}

func NewRuleStrategy() *RuleStrategy { return &RuleStrategy{} }

func (s *RuleStrategy) Name() string { return "rules" }

// minParagraphLen filters boilerplate fragments (nav links, footers).
const minParagraphLen = 30

// topicKeywords is checked in order; the first group with a hit tags
// the paragraph. Funding and traction lead because their trigger words
// are the most specific.
var topicKeywords = []struct {
	topic    models.Topic
	keywords []string
}{
	{models.TopicFunding, []string{"raised", "valuation", "series", "funding", "capital", "$", "investors"}},
	{models.TopicTraction, []string{"users", "maus", "growth", "downloads", "monthly", "adoption", "customers"}},
	{models.TopicFinancials, []string{"revenue", "arr", "gross margin", "burn rate", "profit", "run rate", "projections"}},
	{models.TopicProblem, []string{"problem", "pain", "frustrating", "difficulty", "challenge"}},
	{models.TopicSolution, []string{"solve", "our product", "we address", "enables", "platform helps"}},
	{models.TopicProduct, []string{"features", "dashboard", "ux", "tools", "functionality"}},
	{models.TopicBusinessModel, []string{"pricing", "free", "pro", "enterprise", "subscription", "monetize"}},
	{models.TopicTeam, []string{"founder", "co-founder", "ceo", "cto", "coo", "team members"}},
	{models.TopicMarket, []string{"market size", "tam", "sam", "som", "opportunity", "addressable market"}},
	{models.TopicCompetition, []string{"competitor", "alternative", "differentiat", "versus", "compared to"}},
	{models.TopicWhyNow, []string{"why now", "tailwind", "timing", "trend", "catalyst", "shift"}},
}

// metricTopics are extracted sentence-by-sentence so every numeric
// claim gets its own bullet and its own citation snippet.
var metricTopics = map[models.Topic]bool{
	models.TopicFunding:    true,
	models.TopicTraction:   true,
	models.TopicFinancials: true,
}

var (
	countMetricRe = regexp.MustCompile(`(?i)(\d[\d,.]*)\s*(users|MAU|ARR|GMV|downloads|customers|countries|markets|partners|employees|stars|reviews)`)
	moneyMetricRe = regexp.MustCompile(`(?i)(raised|secured|closed)\s+(an?\s+)?\$\d[\d,.]*\s*([MB]\b|million|billion)?`)
	moneyValueRe  = regexp.MustCompile(`(?i)\$\d[\d,.]*\s*([MB]\b|million|billion)?\s*(revenue|funding|ARR|seed|series\s+[A-F])?`)
)

// Extract tags each paragraph of the chunk and turns tagged content
// into candidates with paragraph- or sentence-level citations.
func (s *RuleStrategy) Extract(ctx context.Context, subject string, chunk chunker.Chunk) (Candidates, error) {
	out := Candidates{}

	paragraphs := strings.Split(chunk.Text, "\n\n")
	for pi, para := range paragraphs {
		para = strings.TrimSpace(para)
		if len(para) < minParagraphLen {
			continue
		}

		topic, ok := tagParagraph(para)
		if !ok {
			// A leading paragraph that names the subject reads as the
			// company introduction.
			if pi == 0 && chunk.Index == 0 && len(para) > 50 &&
				subject != "" && strings.Contains(strings.ToLower(para), strings.ToLower(subject)) {
				topic, ok = models.TopicIntroduction, true
			}
		}
		if !ok {
			continue
		}

		if metricTopics[topic] {
			matched := false
			for _, sentence := range chunker.Sentences(para) {
				if !countMetricRe.MatchString(sentence) && !moneyMetricRe.MatchString(sentence) {
					continue
				}
				matched = true
				cand := Candidate{
					Text:    sentence,
					Bullets: []string{strings.TrimSuffix(sentence, ".")},
					Metrics: extractMetrics(sentence),
				}
				if chunk.Doc != nil {
					cand.Citation = models.NewCitation(chunk.Doc, sentence)
				}
				out.Add(topic, cand)
			}
			if matched {
				continue
			}
			// No numeric sentence; keep the paragraph as narrative.
		}

		cand := Candidate{Text: para}
		if len(para) <= 200 {
			cand.Bullets = []string{para}
		}
		if chunk.Doc != nil {
			cand.Citation = models.NewCitation(chunk.Doc, para)
		}
		out.Add(topic, cand)
	}

	return out, nil
}

// tagParagraph classifies a paragraph by keyword proximity.
func tagParagraph(para string) (models.Topic, bool) {
	p := strings.ToLower(para)
	for _, group := range topicKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(p, kw) {
				return group.topic, true
			}
		}
	}
	return "", false
}

// extractMetrics pulls name/value pairs from a metric sentence, e.g.
// "12,000 users" -> {"USERS": "12,000"}.
func extractMetrics(sentence string) map[string]string {
	metrics := map[string]string{}
	for _, m := range countMetricRe.FindAllStringSubmatch(sentence, -1) {
		metrics[strings.ToUpper(m[2])] = m[1]
	}
	if m := moneyValueRe.FindString(sentence); m != "" {
		metrics["AMOUNT"] = strings.TrimSpace(m)
	}
	if len(metrics) == 0 {
		return nil
	}
	return metrics
}

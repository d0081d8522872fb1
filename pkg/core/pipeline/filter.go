package pipeline

import (
	"strings"

	"agentic_memo/pkg/models"
)

// junkPhrases flag tutorial/template pages that search collaborators
// occasionally hand in for small companies with thin footprints.
var junkPhrases = []string{"example", "template", "how to make"}

// filterDocs drops raw documents that cannot contribute evidence:
// too-short texts and generic pages that never mention the subject.
func filterDocs(docs []models.RawDoc, subject string, minLength int) []models.RawDoc {
	var kept []models.RawDoc
	subjectLower := strings.ToLower(subject)
	for _, doc := range docs {
		text := strings.TrimSpace(doc.Text)
		if len(text) < minLength {
			continue
		}
		if !strings.Contains(strings.ToLower(text), subjectLower) && isJunk(doc) {
			continue
		}
		kept = append(kept, doc)
	}
	return kept
}

func isJunk(doc models.RawDoc) bool {
	haystack := strings.ToLower(doc.Title + " " + doc.Text)
	for _, phrase := range junkPhrases {
		if strings.Contains(haystack, phrase) {
			return true
		}
	}
	return false
}

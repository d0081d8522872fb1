package extract

import (
	"agentic_memo/pkg/core/chunker"
	"agentic_memo/pkg/core/utils"
	"agentic_memo/pkg/models"
)

// sectionPayload mirrors the JSON object the classifier returns per
// topic key. Extra fields are ignored; missing fields decode to their
// zero values.
type sectionPayload struct {
	Text    string   `json:"text"`
	Bullets []string `json:"bullets"`
	Snippet string   `json:"snippet"`
}

// parseResponse decodes a raw classifier response into candidates.
// The response is untrusted: it is repaired leniently, unknown topic
// keys are dropped, and anything that still fails to parse yields zero
// candidates with ok=false so the caller can treat it like any other
// strategy miss.
func parseResponse(raw string, chunk chunker.Chunk) (Candidates, bool) {
	var payload map[string]sectionPayload
	if err := utils.SmartParse(raw, &payload); err != nil {
		return nil, false
	}

	out := Candidates{}
	for key, sec := range payload {
		topic, known := models.ParseTopic(key)
		if !known {
			continue
		}
		if sec.Text == "" && len(sec.Bullets) == 0 {
			continue
		}

		snippet := sec.Snippet
		if snippet == "" {
			// Fall back to the chunk text so the citation still points
			// at real source material.
			snippet = chunk.Text
		}
		cand := Candidate{
			Text:    sec.Text,
			Bullets: sec.Bullets,
		}
		if chunk.Doc != nil {
			cand.Citation = models.NewCitation(chunk.Doc, snippet)
		}
		out.Add(topic, cand)
	}
	return out, true
}

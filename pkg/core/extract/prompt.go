package extract

import (
	"fmt"
	"strings"

	"agentic_memo/pkg/core/chunker"
	"agentic_memo/pkg/models"
)

// SystemPrompt frames the classifier as a VC analyst restricted to the
// supplied source text. Anything not grounded in the text must be
// omitted, which keeps every extracted claim attributable.
const SystemPrompt = `You are a professional VC analyst. Extract ONLY information that is directly found in the source text you are given. Do not make assumptions or add external knowledge. Return only valid JSON with no additional text.`

var topicGuide = map[models.Topic]string{
	models.TopicIntroduction:  "Company overview, what they do, mission",
	models.TopicProblem:       "Pain points they solve, market problems",
	models.TopicSolution:      "How they solve the problem, their approach",
	models.TopicProduct:       "Features, functionality, how it works",
	models.TopicTraction:      "Users, growth, metrics, milestones",
	models.TopicBusinessModel: "Revenue model, pricing, monetization",
	models.TopicMarket:        "Market size, opportunity, TAM/SAM/SOM",
	models.TopicTeam:          "Founders, key team members, experience",
	models.TopicCompetition:   "Competitors, alternatives, differentiation",
	models.TopicFunding:       "Investment rounds, valuation, investors",
	models.TopicFinancials:    "Revenue, costs, projections",
	models.TopicWhyNow:        "Market timing, trends, catalysts",
}

// BuildExtractionPrompt renders the per-chunk classification request.
// The response schema is keyed by the fixed topic enumeration; any key
// outside it is dropped at parse time.
func BuildExtractionPrompt(subject string, chunk chunker.Chunk) string {
	var topics strings.Builder
	for i, t := range models.AllTopics {
		fmt.Fprintf(&topics, "%d. %s - %s\n", i+1, t, topicGuide[t])
	}

	url := ""
	title := ""
	if chunk.Doc != nil {
		url = chunk.Doc.URL
		title = chunk.Doc.Title
	}

	return fmt.Sprintf(`Company: %s
Source URL: %s
Source Title: %s

TEXT:
"""%s"""

Instructions:
For each of the following sections, return ONLY if relevant information is found in the source text:

%s
Format output as JSON:
{
  "section_name": {
    "text": "Brief summary of relevant information",
    "bullets": ["Key point 1", "Key point 2"],
    "snippet": "Exact quote from the source text supporting the claims"
  }
}

If no relevant information is found for a section, omit it entirely.
Return only valid JSON with no additional text.
`, subject, url, title, chunk.Text, topics.String())
}

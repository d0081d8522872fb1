package synthesis

import (
	"time"

	"github.com/google/uuid"

	"agentic_memo/pkg/models"
)

// Assemble attaches the merged sections to a fresh CompanyDoc. Every
// topic in the fixed enumeration ends up in the document: either with
// its merged section or with an empty one that is also listed in
// MissingTopics. That list is the only place absence of evidence is
// represented.
func Assemble(subject string, sections map[models.Topic]models.Section) *models.CompanyDoc {
	doc := &models.CompanyDoc{
		RunID:       uuid.New().String(),
		Name:        subject,
		GeneratedAt: time.Now().UTC(),
		Sections:    make(map[models.Topic]models.Section, len(models.AllTopics)),
	}

	for _, topic := range models.AllTopics {
		section := sections[topic]
		doc.Sections[topic] = section
		if !section.HasContent() {
			doc.MissingTopics = append(doc.MissingTopics, topic)
		}
	}

	return doc
}

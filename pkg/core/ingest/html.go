// Package ingest converts already-fetched collaborator payloads (HTML
// pages, Markdown documents) into RawDocs the engine can chunk.
// Network fetching itself lives with the scraping collaborators; this
// package only does the text plumbing.
package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"agentic_memo/pkg/models"
)

// noiseSelectors name the elements that never carry evidence: code,
// styling, navigation chrome and form controls.
var noiseSelectors = []string{
	"script", "style", "noscript", "iframe",
	"nav", "header", "footer", "aside",
	"form", "button",
}

// HTMLToRawDoc strips an HTML page down to its paragraph text and
// wraps it as a RawDoc. Paragraph boundaries are preserved as blank
// lines so the chunker can split on them.
func HTMLToRawDoc(url string, htmlContent string, sourceType models.SourceType, fetchedAt time.Time) (models.RawDoc, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return models.RawDoc{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	var blocks []string
	doc.Find("h1, h2, h3, h4, p, li, td, blockquote").Each(func(i int, sel *goquery.Selection) {
		// Leaf-level text only; nested containers would duplicate it.
		if sel.Children().Filter("p, li").Length() > 0 {
			return
		}
		text := collapseSpace(sel.Text())
		if text == "" {
			return
		}
		blocks = append(blocks, text)
	})

	if len(blocks) == 0 {
		// Fall back to the whole body for pages without block markup.
		if body := collapseSpace(doc.Find("body").Text()); body != "" {
			blocks = append(blocks, body)
		}
	}

	return models.RawDoc{
		URL:        url,
		Title:      title,
		Text:       strings.Join(blocks, "\n\n"),
		SourceType: sourceType,
		FetchedAt:  fetchedAt,
	}, nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

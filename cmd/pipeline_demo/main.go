// Command pipeline_demo exercises the whole engine on embedded sample
// documents using the rule-based strategy only, so it runs without any
// API credential or database.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"agentic_memo/pkg/core/pipeline"
	"agentic_memo/pkg/models"
)

const siteText = `Acme Robotics builds autonomous warehouse robots that cut fulfillment costs for mid-size retailers.

Warehouse operators struggle with rising labor costs and a persistent difficulty hiring seasonal staff, a problem that compounds every holiday peak.

Our platform helps retailers automate picking end to end and enables same-day fulfillment without new conveyor infrastructure.

Acme serves 40 customers across 12 countries, with monthly volume growth of 18%.

Acme raised $5M Seed in 2020. Acme raised $25M Series A in 2021.

Pricing starts with a free pilot, then a per-robot subscription with an enterprise tier for multi-site fleets.`

const searchText = `Acme Robotics valuation reached $120M after the Series A, according to investors familiar with the round.`

func main() {
	docs := []models.RawDoc{
		{
			URL:        "https://acme-robotics.example/about",
			Title:      "Acme Robotics — About",
			Text:       siteText,
			SourceType: models.SourceSite,
			FetchedAt:  time.Now().UTC(),
		},
		{
			URL:        "https://news.example/acme-series-a",
			Title:      "Acme Robotics raises Series A",
			Text:       searchText,
			SourceType: models.SourceSearch,
			FetchedAt:  time.Now().UTC(),
		},
	}

	cfg := pipeline.DefaultConfig()
	cfg.EnableLLM = false
	cfg.BatchTimeoutSec = 30

	ctx := context.Background()
	orch, err := pipeline.NewOrchestrator(ctx, cfg)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	doc, err := orch.Run(ctx, "Acme Robotics", docs)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	for _, topic := range models.AllTopics {
		section := doc.Section(topic)
		fmt.Printf("\n## %s\n", topic)
		if doc.IsMissing(topic) {
			fmt.Println("(missing)")
			continue
		}
		if section.Text != "" {
			fmt.Println(section.Text)
		}
		for _, b := range section.Bullets {
			fmt.Printf("  - %s\n", b)
		}
		for _, c := range section.Citations {
			fmt.Printf("  [source] %s (%s)\n", c.URL, c.SourceType)
		}
	}
}

// Command pipeline runs one evidence-extraction run: it reads a batch
// of raw documents (produced by scraping / search / OCR collaborators),
// extracts and merges per-topic evidence for the named company and
// writes the assembled document as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"agentic_memo/pkg/core/pipeline"
	"agentic_memo/pkg/core/store"
	"agentic_memo/pkg/models"
)

func main() {
	company := flag.String("company", "", "Subject company name (required)")
	docsPath := flag.String("docs", "", "Path to a JSON array of raw documents (required)")
	configPath := flag.String("config", "", "Path to a YAML pipeline config (optional)")
	outPath := flag.String("out", "", "Write the assembled document here instead of stdout")
	save := flag.Bool("save", false, "Persist the document to Postgres (DATABASE_URL)")
	flag.Parse()

	if *company == "" || *docsPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	cfg := pipeline.DefaultConfig()
	if *configPath != "" {
		loaded, err := pipeline.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		cfg = loaded
	}

	data, err := os.ReadFile(*docsPath)
	if err != nil {
		log.Fatalf("Error: failed to read raw docs: %v", err)
	}
	var docs []models.RawDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		log.Fatalf("Error: failed to parse raw docs: %v", err)
	}

	fmt.Println("🚀 Research memo pipeline starting...")

	ctx := context.Background()
	orch, err := pipeline.NewOrchestrator(ctx, cfg)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	if *save {
		if err := store.InitDB(ctx); err != nil {
			log.Fatalf("Error: %v", err)
		}
		defer store.Close()
		orch.SetRepository(store.NewMemoRepo())
	}

	doc, err := orch.Run(ctx, *company, docs)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	printSummary(doc)

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		log.Fatalf("Error: failed to encode document: %v", err)
	}
	if *outPath != "" {
		if err := os.WriteFile(*outPath, out, 0o644); err != nil {
			log.Fatalf("Error: failed to write %s: %v", *outPath, err)
		}
		fmt.Printf("Wrote %s\n", *outPath)
	} else {
		fmt.Println(string(out))
	}
}

func printSummary(doc *models.CompanyDoc) {
	fmt.Printf("\n=== %s (run %s) ===\n", doc.Name, doc.RunID)
	for _, topic := range models.AllTopics {
		section := doc.Section(topic)
		status := "ok"
		if doc.IsMissing(topic) {
			status = "MISSING"
		}
		fmt.Printf("  %-15s %-8s %2d bullets, %2d citations\n", topic, status, len(section.Bullets), len(section.Citations))
	}
	if len(doc.MissingTopics) > 0 {
		fmt.Printf("Missing topics: %v\n", doc.MissingTopics)
	}
}

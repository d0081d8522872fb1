package pipeline

import (
	"context"
	"errors"
	"log"
	"sync"

	"golang.org/x/time/rate"

	"agentic_memo/pkg/core/chunker"
	"agentic_memo/pkg/core/extract"
)

// Throttled marks strategies whose calls go through the shared
// inter-call gate (i.e. strategies that hit an external service).
type Throttled interface {
	Throttled() bool
}

// Cascade tries the data-driven strategies per chunk in preference
// order and falls through on failure or an empty result. It is the
// sole point where external-service failures become degraded output:
// nothing it calls can surface an error to the engine's caller.
type Cascade struct {
	strategies []extract.Strategy
	generic    *extract.GenericStrategy
	limiter    *rate.Limiter
	workers    int
}

// NewCascade builds a cascade over the given data-driven strategies.
// limiter may be nil (no inter-call delay); workers < 1 means serial.
func NewCascade(strategies []extract.Strategy, generic *extract.GenericStrategy, limiter *rate.Limiter, workers int) *Cascade {
	if workers < 1 {
		workers = 1
	}
	return &Cascade{
		strategies: strategies,
		generic:    generic,
		limiter:    limiter,
		workers:    workers,
	}
}

// ExtractAll classifies every chunk and accumulates candidates per
// topic. Chunk extractions are independent, so they fan out over a
// bounded worker pool; results are only folded together once all
// workers have finished, so no caller ever observes a partial set.
// After the batch, topics with zero accumulated candidates receive a
// single generic placeholder (when one is configured for them).
func (c *Cascade) ExtractAll(ctx context.Context, subject string, chunks []chunker.Chunk) extract.Candidates {
	results := extract.Candidates{}

	jobs := make(chan chunker.Chunk)
	perChunk := make(chan extract.Candidates, len(chunks))

	var wg sync.WaitGroup
	for w := 0; w < c.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for chunk := range jobs {
				perChunk <- c.extractChunk(ctx, subject, chunk)
			}
		}()
	}

	for _, chunk := range chunks {
		jobs <- chunk
	}
	close(jobs)
	wg.Wait()
	close(perChunk)

	for cands := range perChunk {
		results.Merge(cands)
	}

	c.applyGeneric(ctx, subject, results)
	return results
}

// extractChunk walks the strategy cascade for one chunk. A strategy
// "fails" the chunk when it errors out (after its own retry budget) or
// returns zero candidates for every topic; the next strategy then gets
// its turn. The worst case is an empty result, never an error.
func (c *Cascade) extractChunk(ctx context.Context, subject string, chunk chunker.Chunk) extract.Candidates {
	for _, strategy := range c.strategies {
		if t, ok := strategy.(Throttled); ok && t.Throttled() && c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				// Batch deadline hit while queued; this chunk falls
				// through to the next strategy.
				continue
			}
		}

		cands, err := strategy.Extract(ctx, subject, chunk)
		if errors.Is(err, extract.ErrStrategyUnavailable) {
			continue
		}
		if err != nil {
			log.Printf("[CASCADE] strategy %s failed for chunk %d of %s: %v", strategy.Name(), chunk.Index, docURL(chunk), err)
			continue
		}
		if !cands.Empty() {
			return cands
		}
	}
	return extract.Candidates{}
}

// applyGeneric fills batch-wide evidence gaps with placeholders.
func (c *Cascade) applyGeneric(ctx context.Context, subject string, results extract.Candidates) {
	if c.generic == nil {
		return
	}
	placeholders, err := c.generic.Extract(ctx, subject, chunker.Chunk{})
	if err != nil {
		return
	}
	for topic, list := range placeholders {
		if len(results[topic]) == 0 && len(list) > 0 {
			results[topic] = list[:1]
		}
	}
}

func docURL(chunk chunker.Chunk) string {
	if chunk.Doc == nil {
		return "<no source>"
	}
	return chunk.Doc.URL
}

// Package llm provides pluggable model providers for the extraction
// pipeline. Providers are stateless adapters around vendor SDKs; all
// classification semantics live in pkg/core/extract.
package llm

import (
	"context"
)

// Provider is the interface the extraction strategies talk to.
// Options carries provider-specific knobs (model override, JSON mode).
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}

// HasCredential reports whether a provider can run in this environment.
// A missing credential is a capability toggle, not an error: the
// cascade simply skips the LLM strategy.
type HasCredential interface {
	Available() bool
}

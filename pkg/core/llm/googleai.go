package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GoogleAIProvider implements Provider on the legacy generative-ai-go
// SDK. It holds a long-lived client, which keeps per-chunk calls cheap
// when a run fans out over many chunks.
type GoogleAIProvider struct {
	Model  string
	client *genai.Client
}

var _ Provider = (*GoogleAIProvider)(nil)

// NewGoogleAIProvider creates a provider backed by a shared client.
// Fails only on client construction; a missing key is reported through
// Available instead so the cascade can skip the strategy.
func NewGoogleAIProvider(ctx context.Context, model string) (*GoogleAIProvider, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return &GoogleAIProvider{Model: model}, nil
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GoogleAIProvider{Model: model, client: client}, nil
}

// Available reports whether the client was constructed with a key.
func (p *GoogleAIProvider) Available() bool {
	return p.client != nil
}

// Close releases the underlying client.
func (p *GoogleAIProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

// GenerateResponse runs a single generation call.
func (p *GoogleAIProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	if p.client == nil {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	name := p.Model
	if name == "" {
		name = "gemini-2.0-flash"
	}
	if val, ok := options["model"].(string); ok && val != "" {
		name = val
	}

	model := p.client.GenerativeModel(name)
	model.SetTemperature(0.3)
	if val, ok := options["response_format"].(string); ok && val == "json" {
		model.ResponseMIMEType = "application/json"
	}
	if systemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemPrompt)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String(), nil
}

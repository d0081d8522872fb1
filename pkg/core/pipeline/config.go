package pipeline

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"agentic_memo/pkg/core/chunker"
	"agentic_memo/pkg/models"
)

// Config drives one analysis run. Loaded from YAML by the cmd/
// entrypoints; zero values fall back to the defaults below.
type Config struct {
	// Chunking
	ChunkSize    int `yaml:"chunk_size"`     // Max chunk bytes, tuned to the LLM input budget
	MinDocLength int `yaml:"min_doc_length"` // RawDocs shorter than this are skipped

	// Strategy toggles. The LLM strategy additionally disables itself
	// when no credential is configured.
	EnableLLM   bool   `yaml:"enable_llm"`
	EnableRules bool   `yaml:"enable_rules"`
	Provider    string `yaml:"provider"` // "gemini" (unified SDK) or "googleai" (legacy SDK)
	Model       string `yaml:"model"`

	// Retry budget for external calls
	MaxAttempts int `yaml:"max_attempts"`
	BaseDelayMS int `yaml:"base_delay_ms"`

	// Scheduling
	Workers           int `yaml:"workers"`
	MinCallIntervalMS int `yaml:"min_call_interval_ms"`
	BatchTimeoutSec   int `yaml:"batch_timeout_sec"`

	// Topics eligible for a generic placeholder; empty means all.
	GenericTopics []string `yaml:"generic_topics"`
}

// DefaultConfig mirrors the limits the pipeline was tuned against.
func DefaultConfig() Config {
	return Config{
		ChunkSize:         chunker.DefaultMaxChunkSize,
		MinDocLength:      50,
		EnableLLM:         true,
		EnableRules:       true,
		Provider:          "gemini",
		MaxAttempts:       3,
		BaseDelayMS:       1000,
		Workers:           4,
		MinCallIntervalMS: 1000,
		BatchTimeoutSec:   300,
	}
}

// LoadConfig reads a YAML config, layered over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// BatchTimeout returns the run deadline, or zero when unlimited.
func (c Config) BatchTimeout() time.Duration {
	return time.Duration(c.BatchTimeoutSec) * time.Second
}

// CallInterval returns the minimum delay between external calls.
func (c Config) CallInterval() time.Duration {
	return time.Duration(c.MinCallIntervalMS) * time.Millisecond
}

// BaseDelay returns the initial retry backoff.
func (c Config) BaseDelay() time.Duration {
	return time.Duration(c.BaseDelayMS) * time.Millisecond
}

// PlaceholderTopics resolves the configured generic subset.
func (c Config) PlaceholderTopics() []models.Topic {
	if len(c.GenericTopics) == 0 {
		return models.AllTopics
	}
	var topics []models.Topic
	for _, raw := range c.GenericTopics {
		if t, ok := models.ParseTopic(raw); ok {
			topics = append(topics, t)
		}
	}
	return topics
}

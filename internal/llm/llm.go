// Package llm provides the generation-step client shared by script
// structuring, classification, and rewriting. It defines a provider-agnostic
// interface with a concrete OpenAI implementation and a deterministic mock
// for testing.
package llm

import (
	"context"
	"errors"
)

var (
	ErrLLMFailed     = errors.New("LLM request failed")
	ErrInvalidConfig = errors.New("invalid LLM configuration")
)

// LLM defines the interface for interacting with language models.
// Implementations must be stateless and thread-safe.
type LLM interface {
	// Generate produces text from a prompt using the configured model.
	// Returns the generated text or an error if generation fails.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config holds common configuration options for LLM providers.
type Config struct {
	// Model specifies the model identifier (e.g., "gpt-4o-mini")
	Model string

	// Temperature controls randomness (0.0 = deterministic, 2.0 = very random)
	Temperature float32

	// MaxTokens limits the response length (0 = use provider default)
	MaxTokens int

	// APIKey is the authentication key for the provider
	APIKey string
}

// DefaultConfig returns sensible defaults for script personalization.
// Rewritten lines are short, so the token budget stays small.
func DefaultConfig() Config {
	return Config{
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
		MaxTokens:   400,
	}
}

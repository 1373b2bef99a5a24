package knowledge

import (
	"errors"
	"testing"
)

func TestNewOpenAIEmbedder_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := NewOpenAIEmbedder(DefaultEmbeddingModel, DefaultEmbeddingDimension); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got %v", err)
	}
}

func TestNewOpenAIEmbedder_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	embedder, err := NewOpenAIEmbedder("", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if embedder.Dimension() != DefaultEmbeddingDimension {
		t.Errorf("Expected default dimension %d, got %d", DefaultEmbeddingDimension, embedder.Dimension())
	}
	if embedder.model != DefaultEmbeddingModel {
		t.Errorf("Expected default model %q, got %q", DefaultEmbeddingModel, embedder.model)
	}
}

func TestNewOpenAIEmbedder_ExplicitConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	embedder, err := NewOpenAIEmbedder("text-embedding-3-large", 3072)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if embedder.Dimension() != 3072 {
		t.Errorf("Expected dimension 3072, got %d", embedder.Dimension())
	}
}

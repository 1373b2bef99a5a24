package llm

import (
	"errors"
	"testing"
)

func TestNewOpenAI_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := NewOpenAI(DefaultConfig()); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewOpenAI_MissingModel(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	config := DefaultConfig()
	config.Model = ""
	if _, err := NewOpenAI(config); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewOpenAI_ConfigKeyOverridesEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	config := DefaultConfig()
	config.APIKey = "explicit-key"
	client, err := NewOpenAI(config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(client.model) != config.Model {
		t.Errorf("Expected model %q, got %q", config.Model, client.model)
	}
}

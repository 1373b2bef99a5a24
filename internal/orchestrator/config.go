// Package orchestrator sequences the script personalization pipeline:
// segment the script, then classify, retrieve, and rewrite each chunk in
// order, and reassemble the result. It also provides the analysis-only mode
// that persists the section breakdown without rewriting anything.
package orchestrator

import (
	"os"

	"github.com/Yates-Labs/recast/internal/knowledge"
	"github.com/Yates-Labs/recast/internal/llm"
	"github.com/Yates-Labs/recast/internal/script"
)

// Config holds configuration for the personalization pipeline.
type Config struct {
	// TopK is the retrieval fan-out per chunk
	TopK int

	// CallTimeoutSeconds bounds each external embedding/generation call.
	// Zero disables the per-call timeout.
	CallTimeoutSeconds int

	// Subject is who the script is personalized to; it appears in the
	// classify and rewrite prompts
	Subject string

	// EmbedderModel is the embedding model (e.g., "text-embedding-3-small")
	EmbedderModel string

	// EmbedderDimension is the embedding vector dimension
	EmbedderDimension int

	// Chunking bounds the sub-splitting of long sections
	Chunking script.ChunkConfig

	// Build holds corpus indexing configuration (passage sizing, canonical
	// corpus path)
	Build knowledge.BuildConfig

	// LLMConfig holds the generation-step configuration
	LLMConfig llm.Config

	// MilvusConfig holds the vector store configuration
	MilvusConfig knowledge.MilvusConfig
}

// DefaultConfig returns sensible defaults for the pipeline.
func DefaultConfig() Config {
	subject := os.Getenv("RECAST_SUBJECT")
	if subject == "" {
		subject = "the founder"
	}

	return Config{
		TopK:               4,
		CallTimeoutSeconds: 60,
		Subject:            subject,
		EmbedderModel:      knowledge.DefaultEmbeddingModel,
		EmbedderDimension:  knowledge.DefaultEmbeddingDimension,
		Chunking:           script.DefaultChunkConfig(),
		Build:              knowledge.DefaultBuildConfig(),
		LLMConfig:          llm.DefaultConfig(),
		MilvusConfig:       knowledge.DefaultMilvusConfig(),
	}
}

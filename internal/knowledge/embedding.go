package knowledge

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Embedding defaults. The small model at 1536 dimensions is plenty for a
// single-person corpus of a few hundred passages.
const (
	DefaultEmbeddingModel     = "text-embedding-3-small"
	DefaultEmbeddingDimension = 1536
)

var (
	ErrEmptyTexts      = errors.New("no texts provided for embedding")
	ErrMissingAPIKey   = errors.New("OPENAI_API_KEY environment variable not set")
	ErrEmbeddingFailed = errors.New("embedding generation failed")
)

// Embedder turns corpus passages and retrieval queries into vectors. The
// same embedder must serve both sides, or query vectors would not live in
// the passage index's space.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the vector dimension this embedder produces. It
	// must match the dimension the passage index was created with.
	Dimension() int
}

// OpenAIEmbedder embeds passages and queries through OpenAI's embeddings API.
type OpenAIEmbedder struct {
	client    openai.Client
	model     string
	dimension int
}

// NewOpenAIEmbedder creates an embedder for the given model and dimension.
// A blank model or non-positive dimension falls back to the defaults.
func NewOpenAIEmbedder(model string, dimension int) (*OpenAIEmbedder, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	if model == "" {
		model = DefaultEmbeddingModel
	}
	if dimension <= 0 {
		dimension = DefaultEmbeddingDimension
	}

	return &OpenAIEmbedder{
		client:    openai.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		dimension: dimension,
	}, nil
}

// Dimension returns the configured vector dimension.
func (e *OpenAIEmbedder) Dimension() int {
	return e.dimension
}

// Embed generates one vector per text. Result order follows input order
// regardless of the order the API returns data in.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyTexts
	}

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
		Model:          e.model,
		Dimensions:     openai.Int(int64(e.dimension)),
		EncodingFormat: openai.EmbeddingNewParamsEncodingFormatFloat,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", ErrEmbeddingFailed, len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, data := range resp.Data {
		vector := make([]float32, len(data.Embedding))
		for i, val := range data.Embedding {
			vector[i] = float32(val)
		}
		vectors[int(data.Index)] = vector
	}

	return vectors, nil
}

package knowledge

import (
	"context"
	"fmt"
	"strings"
)

// ContextDelimiter joins distinct retrieved passages into one compact
// context string for the rewrite prompt.
const ContextDelimiter = " | "

// Retriever provides semantic retrieval of corpus passages for grounding
// rewrites. The store must be fully built before retrieval begins.
type Retriever struct {
	embedder Embedder
	store    VectorStore
}

// NewRetriever creates a new Retriever instance.
func NewRetriever(embedder Embedder, store VectorStore) (*Retriever, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder cannot be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("vector store cannot be nil")
	}

	return &Retriever{
		embedder: embedder,
		store:    store,
	}, nil
}

// RetrieveContext executes a retrieval query and returns a compact context
// string of up to topK distinct passages, joined with ContextDelimiter.
//
// An empty query means "no retrieval wanted" and short-circuits without
// touching the store. An empty result string is valid and means the rewrite
// should personalize by tone only.
func (r *Retriever) RetrieveContext(ctx context.Context, query string, topK int) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", nil
	}
	if topK <= 0 {
		return "", fmt.Errorf("topK must be positive, got %d", topK)
	}

	vectors, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return "", fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) == 0 {
		return "", fmt.Errorf("no embedding generated for query")
	}

	matches, err := r.store.Search(ctx, vectors[0], topK)
	if err != nil {
		return "", fmt.Errorf("failed to search passages: %w", err)
	}

	// Exact-text dedup, first-seen order, capped at topK.
	seen := make(map[string]struct{}, len(matches))
	unique := make([]string, 0, len(matches))
	for _, match := range matches {
		text := strings.TrimSpace(match.Text)
		if text == "" {
			continue
		}
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}
		unique = append(unique, text)
		if len(unique) >= topK {
			break
		}
	}

	return strings.Join(unique, ContextDelimiter), nil
}

package knowledge

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"sync"
)

// Common errors for corpus building
var (
	ErrMissingCorpus = errors.New("corpus source not found")
	ErrEmptyCorpus   = errors.New("corpus source is empty")
)

// BuildConfig holds configuration for corpus indexing
type BuildConfig struct {
	// PassageSize is the target passage length in runes
	PassageSize int

	// PassageOverlap is the overlap between adjacent passages in runes
	PassageOverlap int

	// BatchSize determines how many passages to embed per API call
	BatchSize int

	// CorpusPath is the canonical corpus source, used by Load when the
	// persisted index is absent
	CorpusPath string
}

// DefaultBuildConfig returns sensible defaults for corpus indexing
func DefaultBuildConfig() BuildConfig {
	corpusPath := os.Getenv("RECAST_CORPUS")
	if corpusPath == "" {
		corpusPath = "personality.txt"
	}

	return BuildConfig{
		PassageSize:    DefaultPassageSize,
		PassageOverlap: DefaultPassageOverlap,
		BatchSize:      16,
		CorpusPath:     corpusPath,
	}
}

// Builder owns the build/load contract for the passage index. Build is
// destructive (it replaces the persisted index), so at most one build may
// be in flight at a time.
type Builder struct {
	embedder Embedder
	store    VectorStore
	config   BuildConfig

	mu sync.Mutex // serializes builds
}

// NewBuilder creates a corpus builder over the given embedder and store.
func NewBuilder(embedder Embedder, store VectorStore, config BuildConfig) (*Builder, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder cannot be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("vector store cannot be nil")
	}

	return &Builder{
		embedder: embedder,
		store:    store,
		config:   config,
	}, nil
}

// Build splits corpus text into passages, embeds them, and replaces the
// persisted index. Rebuilding is idempotent: the prior index is always
// dropped first.
func (b *Builder) Build(ctx context.Context, corpusText string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if strings.TrimSpace(corpusText) == "" {
		return ErrEmptyCorpus
	}

	passages := SplitPassages(corpusText, b.config.PassageSize, b.config.PassageOverlap)
	log.Printf("[Knowledge] Building index from %d passages", len(passages))

	if err := b.store.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset index: %w", err)
	}

	batchSize := b.config.BatchSize
	if batchSize <= 0 {
		batchSize = 16
	}

	for batchStart := 0; batchStart < len(passages); batchStart += batchSize {
		batchEnd := batchStart + batchSize
		if batchEnd > len(passages) {
			batchEnd = len(passages)
		}

		batch := passages[batchStart:batchEnd]

		texts := make([]string, len(batch))
		for i, passage := range batch {
			texts[i] = passage.Text
		}

		vectors, err := b.embedder.Embed(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to embed batch starting at %d: %w", batchStart, err)
		}

		records := make([]PassageRecord, len(batch))
		for i, passage := range batch {
			records[i] = PassageRecord{
				PassageID: passage.ID,
				Text:      passage.Text,
				Offset:    int64(passage.Offset),
				Embedding: vectors[i],
			}
		}

		if err := b.store.Insert(ctx, records); err != nil {
			return fmt.Errorf("failed to insert batch starting at %d: %w", batchStart, err)
		}
	}

	log.Printf("[Knowledge] Index built (%d passages)", len(passages))
	return nil
}

// BuildFromFile reads a corpus file and builds the index from its content.
func (b *Builder) BuildFromFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissingCorpus, path)
		}
		return fmt.Errorf("failed to read corpus: %w", err)
	}

	return b.Build(ctx, string(data))
}

// Load ensures the persisted index exists, building it from the canonical
// corpus source when absent. Intended for startup only; retrieval paths
// never trigger a build.
func (b *Builder) Load(ctx context.Context) error {
	count, err := b.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check index: %w", err)
	}

	if count > 0 {
		log.Printf("[Knowledge] Index found (%d passages)", count)
		return nil
	}

	log.Printf("[Knowledge] Index absent, building from %s", b.config.CorpusPath)
	return b.BuildFromFile(ctx, b.config.CorpusPath)
}

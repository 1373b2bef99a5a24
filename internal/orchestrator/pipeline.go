package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Yates-Labs/recast/internal/knowledge"
	"github.com/Yates-Labs/recast/internal/llm"
	"github.com/Yates-Labs/recast/internal/rewrite"
	"github.com/Yates-Labs/recast/internal/script"
)

var (
	ErrMissingInput = errors.New("input script not found")
)

// SectionSeparator joins rewritten sections in the final script.
const SectionSeparator = "\n\n"

// Pipeline wires the personalization stages together. All external-call
// handles (embedder, vector store, LLM) are constructed once and passed
// explicitly into each component; nothing here is a process-wide singleton.
type Pipeline struct {
	config     Config
	store      knowledge.VectorStore
	builder    *knowledge.Builder
	retriever  *knowledge.Retriever
	segmenter  *script.Segmenter
	classifier *rewrite.Classifier
	rewriter   *rewrite.Rewriter
	tokens     *script.TokenCounter
}

// NewPipeline creates a personalization pipeline with the given configuration.
func NewPipeline(ctx context.Context, config Config) (*Pipeline, error) {
	embedder, err := knowledge.NewOpenAIEmbedder(config.EmbedderModel, config.EmbedderDimension)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	store, err := knowledge.NewMilvusStore(ctx, config.MilvusConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create vector store: %w", err)
	}

	builder, err := knowledge.NewBuilder(embedder, store, config.Build)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create builder: %w", err)
	}

	retriever, err := knowledge.NewRetriever(embedder, store)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create retriever: %w", err)
	}

	client, err := llm.NewOpenAI(config.LLMConfig)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create LLM: %w", err)
	}

	segmenter, err := script.NewSegmenter(client)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create segmenter: %w", err)
	}

	classifier, err := rewrite.NewClassifier(client, config.Subject)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create classifier: %w", err)
	}

	rewriter, err := rewrite.NewRewriter(client, config.Subject)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create rewriter: %w", err)
	}

	return &Pipeline{
		config:     config,
		store:      store,
		builder:    builder,
		retriever:  retriever,
		segmenter:  segmenter,
		classifier: classifier,
		rewriter:   rewriter,
		tokens:     script.NewTokenCounter(config.LLMConfig.Model),
	}, nil
}

// Close releases resources held by the pipeline.
func (p *Pipeline) Close() error {
	if p.store != nil {
		return p.store.Close()
	}
	return nil
}

// BuildCorpus rebuilds the knowledge store from a corpus file. An empty
// path uses the canonical corpus source from the configuration.
func (p *Pipeline) BuildCorpus(ctx context.Context, path string) error {
	if path == "" {
		path = p.config.Build.CorpusPath
	}
	return p.builder.BuildFromFile(ctx, path)
}

// PassageCount returns the number of passages in the persisted index.
func (p *Pipeline) PassageCount(ctx context.Context) (int64, error) {
	return p.store.Count(ctx)
}

// Run personalizes the script at inputPath and persists the result to
// outputPath, returning the final text for immediate display.
//
// A missing input file is an error; a present-but-blank one is a soft
// no-op that returns "" without writing anything. Structuring and
// classification failures degrade per their components; a rewrite failure
// aborts the run since there is no safe default for generated content.
func (p *Pipeline) Run(ctx context.Context, inputPath, outputPath, extraInstructions string) (string, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrMissingInput, inputPath)
		}
		return "", fmt.Errorf("failed to read input script: %w", err)
	}

	scriptText := strings.TrimSpace(string(data))
	if scriptText == "" {
		log.Printf("[Pipeline] %s is empty, nothing to personalize", inputPath)
		return "", nil
	}

	if err := p.builder.Load(ctx); err != nil {
		return "", fmt.Errorf("failed to load knowledge store: %w", err)
	}

	if extra := strings.TrimSpace(extraInstructions); extra != "" {
		log.Printf("[Pipeline] Extra instructions: %s", extra)
	}

	callCtx, cancel := p.callContext(ctx)
	sections := p.segmenter.Structure(callCtx, scriptText)
	cancel()

	var sectionTexts []string
	chunkIndex := 0

	for si, section := range sections {
		chunks := script.ChunkSection(section.Content, p.config.Chunking)
		log.Printf("[Pipeline] Section %d/%d (%s): %d chunk(s)", si+1, len(sections), section.Type, len(chunks))

		var lines []string
		for _, chunk := range chunks {
			chunkIndex++
			log.Printf("[Pipeline] Chunk %d in (~%d tokens): %s", chunkIndex, p.tokens.Count(chunk), chunk)

			callCtx, cancel := p.callContext(ctx)
			classification := p.classifier.Classify(callCtx, chunk)
			cancel()

			callCtx, cancel = p.callContext(ctx)
			contextText, err := p.retriever.RetrieveContext(callCtx, classification.RetrievalQuery, p.config.TopK)
			cancel()
			if err != nil {
				return "", fmt.Errorf("retrieval failed for chunk %d: %w", chunkIndex, err)
			}

			callCtx, cancel = p.callContext(ctx)
			line, err := p.rewriter.Rewrite(callCtx, chunk, classification.Role, contextText, extraInstructions)
			cancel()
			if err != nil {
				return "", fmt.Errorf("rewrite failed for chunk %d: %w", chunkIndex, err)
			}

			log.Printf("[Pipeline] Chunk %d out: %s", chunkIndex, line)
			lines = append(lines, line)
		}

		if len(lines) > 0 {
			sectionTexts = append(sectionTexts, strings.Join(lines, " "))
		}
	}

	finalScript := strings.Join(sectionTexts, SectionSeparator)

	if err := os.WriteFile(outputPath, []byte(finalScript), 0o644); err != nil {
		return "", fmt.Errorf("failed to write output script: %w", err)
	}

	log.Printf("[Pipeline] Personalized script saved to %s (%d sections, %d chunks)", outputPath, len(sectionTexts), chunkIndex)
	return finalScript, nil
}

// callContext bounds a single external call with the configured timeout.
func (p *Pipeline) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.config.CallTimeoutSeconds <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, time.Duration(p.config.CallTimeoutSeconds)*time.Second)
}

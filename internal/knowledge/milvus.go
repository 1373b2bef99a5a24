package knowledge

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
)

// Common errors for Milvus operations
var (
	ErrInvalidDimension = errors.New("invalid vector dimension")
	ErrEmptyRecords     = errors.New("no records provided for insertion")
	ErrConnectionFailed = errors.New("failed to connect to Milvus")
	ErrInsertFailed     = errors.New("failed to insert records")
	ErrSearchFailed     = errors.New("failed to search vectors")
)

// MilvusConfig holds configuration for the Milvus connection and the
// passage collection. The collection name is the "well-known location" of
// the persisted corpus index.
type MilvusConfig struct {
	Address        string // Milvus server address (e.g., "localhost:19530")
	CollectionName string // Name of the passage collection
	Dimension      int    // Vector dimension (e.g., 1536 for text-embedding-3-small)
	IndexType      string // Index type (default: "HNSW")
	MetricType     string // Similarity metric (default: "COSINE")

	// HNSW index parameters
	M              int // HNSW M parameter (default: 16)
	EfConstruction int // HNSW efConstruction (default: 256)
}

// DefaultMilvusConfig returns default configuration from environment variables
func DefaultMilvusConfig() MilvusConfig {
	address := os.Getenv("MILVUS_ADDRESS")
	if address == "" {
		address = "localhost:19530"
	}

	collection := os.Getenv("MILVUS_COLLECTION")
	if collection == "" {
		collection = "recast_passages"
	}

	return MilvusConfig{
		Address:        address,
		CollectionName: collection,
		Dimension:      1536, // text-embedding-3-small
		IndexType:      "HNSW",
		MetricType:     "COSINE",
		M:              16,
		EfConstruction: 256,
	}
}

// MilvusStore implements VectorStore using Milvus
type MilvusStore struct {
	client client.Client
	config MilvusConfig
}

// NewMilvusStore connects to Milvus. The passage collection is created
// lazily by Insert (via the Builder); connecting alone never mutates it.
func NewMilvusStore(ctx context.Context, config MilvusConfig) (*MilvusStore, error) {
	if config.Dimension <= 0 {
		return nil, ErrInvalidDimension
	}

	c, err := client.NewGrpcClient(ctx, config.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	return &MilvusStore{
		client: c,
		config: config,
	}, nil
}

// ensureCollection creates the passage collection with schema if it doesn't exist
func (m *MilvusStore) ensureCollection(ctx context.Context) error {
	has, err := m.client.HasCollection(ctx, m.config.CollectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}

	if has {
		return nil
	}

	schema := &entity.Schema{
		CollectionName: m.config.CollectionName,
		AutoID:         true,
		Fields: []*entity.Field{
			{
				Name:       "id",
				DataType:   entity.FieldTypeInt64,
				PrimaryKey: true,
				AutoID:     true,
			},
			{
				Name:     "passage_id",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "64",
				},
			},
			{
				Name:     "text",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "65535",
				},
			},
			{
				Name:     "source_offset",
				DataType: entity.FieldTypeInt64,
			},
			{
				Name:     "embedding",
				DataType: entity.FieldTypeFloatVector,
				TypeParams: map[string]string{
					"dim": fmt.Sprintf("%d", m.config.Dimension),
				},
			},
		},
	}

	if err := m.client.CreateCollection(ctx, schema, entity.DefaultShardNumber); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	idx, err := entity.NewIndexHNSW(entity.COSINE, m.config.M, m.config.EfConstruction)
	if err != nil {
		return fmt.Errorf("failed to create index config: %w", err)
	}

	if err := m.client.CreateIndex(ctx, m.config.CollectionName, "embedding", idx, false); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if err := m.client.LoadCollection(ctx, m.config.CollectionName, false); err != nil {
		return fmt.Errorf("failed to load collection: %w", err)
	}

	return nil
}

// Insert adds passage records to Milvus, creating the collection on first use
func (m *MilvusStore) Insert(ctx context.Context, records []PassageRecord) error {
	if len(records) == 0 {
		return ErrEmptyRecords
	}

	if err := m.ensureCollection(ctx); err != nil {
		return err
	}

	passageIDs := make([]string, len(records))
	texts := make([]string, len(records))
	offsets := make([]int64, len(records))
	embeddings := make([][]float32, len(records))

	for i, record := range records {
		if len(record.Embedding) != m.config.Dimension {
			return fmt.Errorf("%w: expected %d, got %d", ErrInvalidDimension, m.config.Dimension, len(record.Embedding))
		}
		passageIDs[i] = record.PassageID
		texts[i] = record.Text
		offsets[i] = record.Offset
		embeddings[i] = record.Embedding
	}

	columns := []entity.Column{
		entity.NewColumnVarChar("passage_id", passageIDs),
		entity.NewColumnVarChar("text", texts),
		entity.NewColumnInt64("source_offset", offsets),
		entity.NewColumnFloatVector("embedding", m.config.Dimension, embeddings),
	}

	if _, err := m.client.Insert(ctx, m.config.CollectionName, "", columns...); err != nil {
		return fmt.Errorf("%w: %v", ErrInsertFailed, err)
	}

	// Flush to ensure data is persisted
	if err := m.client.Flush(ctx, m.config.CollectionName, false); err != nil {
		return fmt.Errorf("failed to flush data: %w", err)
	}

	return nil
}

// Search performs top-K similarity search over passage embeddings
func (m *MilvusStore) Search(ctx context.Context, queryVector []float32, topK int) ([]Match, error) {
	if len(queryVector) != m.config.Dimension {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrInvalidDimension, m.config.Dimension, len(queryVector))
	}

	sp, err := entity.NewIndexHNSWSearchParam(64) // ef parameter for search
	if err != nil {
		return nil, fmt.Errorf("failed to create search params: %w", err)
	}

	vectors := []entity.Vector{entity.FloatVector(queryVector)}
	outputFields := []string{"passage_id", "text"}

	results, err := m.client.Search(
		ctx,
		m.config.CollectionName,
		nil, // partition names
		"",  // no filter expression
		outputFields,
		vectors,
		"embedding",
		entity.COSINE,
		topK,
		sp,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	if len(results) == 0 {
		return []Match{}, nil
	}

	matches := make([]Match, 0, results[0].ResultCount)

	for i := 0; i < results[0].ResultCount; i++ {
		match := Match{
			Score: results[0].Scores[i],
		}

		for _, field := range results[0].Fields {
			switch field.Name() {
			case "passage_id":
				match.PassageID = field.(*entity.ColumnVarChar).Data()[i]
			case "text":
				match.Text = field.(*entity.ColumnVarChar).Data()[i]
			}
		}

		matches = append(matches, match)
	}

	return matches, nil
}

// Reset drops the passage collection and recreates it empty. Destructive;
// callers must serialize access through the Builder.
func (m *MilvusStore) Reset(ctx context.Context) error {
	has, err := m.client.HasCollection(ctx, m.config.CollectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}

	if has {
		if err := m.client.DropCollection(ctx, m.config.CollectionName); err != nil {
			return fmt.Errorf("failed to drop collection: %w", err)
		}
	}

	return m.ensureCollection(ctx)
}

// Count returns the number of stored passages, 0 if the collection is absent
func (m *MilvusStore) Count(ctx context.Context) (int64, error) {
	has, err := m.client.HasCollection(ctx, m.config.CollectionName)
	if err != nil {
		return 0, fmt.Errorf("failed to check collection existence: %w", err)
	}
	if !has {
		return 0, nil
	}

	stats, err := m.client.GetCollectionStatistics(ctx, m.config.CollectionName)
	if err != nil {
		return 0, fmt.Errorf("failed to get stats: %w", err)
	}

	rowCount, err := strconv.ParseInt(stats["row_count"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse row count: %w", err)
	}

	return rowCount, nil
}

// Close releases resources and closes the Milvus connection
func (m *MilvusStore) Close() error {
	if m.client != nil {
		return m.client.Close()
	}
	return nil
}

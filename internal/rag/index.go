package rag

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"mellow-ai/internal/model"
)

// ErrIndexMismatch is returned when a batch insert supplies metadata or ids
// whose length does not match the texts.
var ErrIndexMismatch = errors.New("texts and metadata length mismatch")

const embeddingBatchSize = 10 // most embedding APIs cap batch input size

// Embedder is the embedding capability the index depends on. Any component
// mapping text to a fixed-length vector satisfies it.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// ChunkStore persists indexed chunks. The GORM chunk repository implements it
// in production; tests use an in-memory fake.
type ChunkStore interface {
	CreateBatch(chunks []model.DocumentChunk) error
	ListAll() ([]model.DocumentChunk, error)
	Count() (int64, error)
}

// ChunkMetadata describes where a chunk came from within its source document.
type ChunkMetadata struct {
	Source     string `json:"source"`
	Filename   string `json:"filename"`
	Filetype   string `json:"filetype"`
	ChunkIndex int    `json:"chunk_index"`
	ChunkCount int    `json:"chunk_count"`
}

// SearchResult is one similarity-search hit, most similar first.
type SearchResult struct {
	Content  string        `json:"content"`
	Metadata ChunkMetadata `json:"metadata"`
	Score    float32       `json:"score"`
}

// Index stores embedded chunks and answers k-nearest-neighbor queries by
// brute-force cosine similarity over the stored vectors. It is agnostic to
// where embeddings come from.
type Index struct {
	embedder Embedder
	store    ChunkStore
}

func NewIndex(embedder Embedder, store ChunkStore) *Index {
	return &Index{embedder: embedder, store: store}
}

// Add embeds the texts and stores them with their metadata. Ids are generated
// when nil. Every text is embedded before anything is written, so an
// embedding failure rejects the whole batch and the store never holds a chunk
// without a valid vector.
func (idx *Index) Add(ctx context.Context, texts []string, metadatas []ChunkMetadata, ids []string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if metadatas != nil && len(metadatas) != len(texts) {
		return nil, ErrIndexMismatch
	}
	if ids != nil && len(ids) != len(texts) {
		return nil, ErrIndexMismatch
	}

	if ids == nil {
		ids = make([]string, len(texts))
		for i := range ids {
			ids[i] = uuid.NewString()
		}
	}
	if metadatas == nil {
		metadatas = make([]ChunkMetadata, len(texts))
	}

	var embeddings [][]float32
	for i := 0; i < len(texts); i += embeddingBatchSize {
		end := i + embeddingBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := idx.embedder.EmbedBatch(ctx, texts[i:end])
		if err != nil {
			return nil, fmt.Errorf("embed chunk batch failed: %w", err)
		}
		embeddings = append(embeddings, batch...)
	}
	if len(embeddings) != len(texts) {
		return nil, errors.New("embedding count mismatch")
	}

	chunks := make([]model.DocumentChunk, len(texts))
	for i := range texts {
		chunks[i] = model.DocumentChunk{
			ID:         ids[i],
			Content:    texts[i],
			Source:     metadatas[i].Source,
			Filename:   metadatas[i].Filename,
			Filetype:   metadatas[i].Filetype,
			ChunkIndex: metadatas[i].ChunkIndex,
			ChunkCount: metadatas[i].ChunkCount,
			CreatedAt:  time.Now(),
		}
		chunks[i].SetEmbedding(embeddings[i])
	}
	if err := idx.store.CreateBatch(chunks); err != nil {
		return nil, err
	}
	return ids, nil
}

// Search returns at most k stored chunks ranked by cosine similarity to the
// query, most similar first.
func (idx *Index) Search(ctx context.Context, query string, k int) ([]SearchResult, error) {
	if k <= 0 {
		return nil, nil
	}

	queryVec, err := idx.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query failed: %w", err)
	}

	chunks, err := idx.store.ListAll()
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	results := make([]SearchResult, len(chunks))
	for i := range chunks {
		results[i] = SearchResult{
			Content: chunks[i].Content,
			Metadata: ChunkMetadata{
				Source:     chunks[i].Source,
				Filename:   chunks[i].Filename,
				Filetype:   chunks[i].Filetype,
				ChunkIndex: chunks[i].ChunkIndex,
				ChunkCount: chunks[i].ChunkCount,
			},
			Score: cosineSimilarity(queryVec, chunks[i].EmbeddingVector()),
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Count reports the number of stored chunks.
func (idx *Index) Count(ctx context.Context) (int, error) {
	n, err := idx.store.Count()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA <= 0 || normB <= 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

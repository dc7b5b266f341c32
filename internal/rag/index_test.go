package rag

import (
	"context"
	"errors"
	"testing"

	"mellow-ai/internal/model"
)

// fakeEmbedder returns a fixed vector per text, or fallback for texts it does
// not know. Setting err makes every call fail.
type fakeEmbedder struct {
	vectors  map[string][]float32
	fallback []float32
	err      error
	calls    int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return f.fallback, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := f.vectors[text]; ok {
			out[i] = v
		} else {
			out[i] = f.fallback
		}
	}
	return out, nil
}

// memoryChunkStore is an in-memory ChunkStore.
type memoryChunkStore struct {
	chunks []model.DocumentChunk
	err    error
}

func (s *memoryChunkStore) CreateBatch(chunks []model.DocumentChunk) error {
	if s.err != nil {
		return s.err
	}
	s.chunks = append(s.chunks, chunks...)
	return nil
}

func (s *memoryChunkStore) ListAll() ([]model.DocumentChunk, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.chunks, nil
}

func (s *memoryChunkStore) Count() (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.chunks)), nil
}

func TestIndexAddGeneratesIDs(t *testing.T) {
	store := &memoryChunkStore{}
	index := NewIndex(&fakeEmbedder{fallback: []float32{1, 0}}, store)

	texts := []string{"alpha", "beta", "gamma"}
	ids, err := index.Add(context.Background(), texts, nil, nil)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("expected 3 ids, got %d", len(ids))
	}
	seen := map[string]bool{}
	for _, id := range ids {
		if id == "" || seen[id] {
			t.Errorf("expected unique non-empty ids, got %v", ids)
		}
		seen[id] = true
	}
	if len(store.chunks) != 3 {
		t.Errorf("expected 3 stored chunks, got %d", len(store.chunks))
	}
	for i, chunk := range store.chunks {
		if chunk.Content != texts[i] {
			t.Errorf("chunk %d: expected content %q, got %q", i, texts[i], chunk.Content)
		}
		if len(chunk.EmbeddingVector()) == 0 {
			t.Errorf("chunk %d: expected a stored embedding", i)
		}
	}
}

func TestIndexAddMetadataMismatch(t *testing.T) {
	index := NewIndex(&fakeEmbedder{fallback: []float32{1}}, &memoryChunkStore{})

	_, err := index.Add(context.Background(), []string{"a", "b"}, []ChunkMetadata{{}}, nil)
	if !errors.Is(err, ErrIndexMismatch) {
		t.Fatalf("expected ErrIndexMismatch, got %v", err)
	}

	_, err = index.Add(context.Background(), []string{"a", "b"}, nil, []string{"only-one"})
	if !errors.Is(err, ErrIndexMismatch) {
		t.Fatalf("expected ErrIndexMismatch for ids, got %v", err)
	}
}

func TestIndexAddEmbedFailureWritesNothing(t *testing.T) {
	store := &memoryChunkStore{}
	index := NewIndex(&fakeEmbedder{err: errors.New("embedding api down")}, store)

	_, err := index.Add(context.Background(), []string{"a", "b", "c"}, nil, nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(store.chunks) != 0 {
		t.Errorf("expected no partial write, got %d chunks", len(store.chunks))
	}
}

func TestIndexAddEmptyBatch(t *testing.T) {
	embedder := &fakeEmbedder{fallback: []float32{1}}
	index := NewIndex(embedder, &memoryChunkStore{})

	ids, err := index.Add(context.Background(), nil, nil, nil)
	if err != nil || ids != nil {
		t.Fatalf("expected no-op, got ids=%v err=%v", ids, err)
	}
	if embedder.calls != 0 {
		t.Errorf("expected no embedder calls, got %d", embedder.calls)
	}
}

func TestIndexSearchRanking(t *testing.T) {
	embedder := &fakeEmbedder{
		vectors: map[string][]float32{
			"close": {1, 0},
			"mid":   {1, 1},
			"far":   {0, 1},
			"query": {1, 0},
		},
	}
	store := &memoryChunkStore{}
	index := NewIndex(embedder, store)

	_, err := index.Add(context.Background(), []string{"far", "mid", "close"}, nil, nil)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	results, err := index.Search(context.Background(), "query", 2)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Content != "close" || results[1].Content != "mid" {
		t.Errorf("expected [close mid], got [%s %s]", results[0].Content, results[1].Content)
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("expected descending scores, got %v then %v", results[0].Score, results[1].Score)
	}
}

func TestIndexSearchCapsAtStoreSize(t *testing.T) {
	index := NewIndex(&fakeEmbedder{fallback: []float32{1, 0}}, &memoryChunkStore{})

	if _, err := index.Add(context.Background(), []string{"one", "two"}, nil, nil); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	results, err := index.Search(context.Background(), "anything", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}

func TestIndexSearchEmptyStore(t *testing.T) {
	index := NewIndex(&fakeEmbedder{fallback: []float32{1}}, &memoryChunkStore{})
	results, err := index.Search(context.Background(), "anything", 3)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if results != nil {
		t.Errorf("expected no results, got %v", results)
	}
}

func TestCosineSimilarity(t *testing.T) {
	cases := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"length mismatch", []float32{1, 0}, []float32{1}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := cosineSimilarity(tc.a, tc.b)
			if diff := got - tc.want; diff > 1e-6 || diff < -1e-6 {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

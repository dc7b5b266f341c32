package app

import (
	"context"
	"testing"

	"mellow-ai/internal/ai"
	"mellow-ai/internal/model"
	"mellow-ai/internal/rag"
)

type stubEmbedder struct{}

func (stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1}, nil
}

func (stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{1}
	}
	return out, nil
}

type stubChunkStore struct {
	chunks []model.DocumentChunk
}

func (s *stubChunkStore) CreateBatch(chunks []model.DocumentChunk) error {
	s.chunks = append(s.chunks, chunks...)
	return nil
}

func (s *stubChunkStore) ListAll() ([]model.DocumentChunk, error) { return s.chunks, nil }
func (s *stubChunkStore) Count() (int64, error)                   { return int64(len(s.chunks)), nil }

func TestRAGGeneratorAvailability(t *testing.T) {
	index := rag.NewIndex(stubEmbedder{}, &stubChunkStore{})

	cases := []struct {
		name string
		gen  *RAGGenerator
		want bool
	}{
		{"configured", NewRAGGenerator(nil, ai.ChatConfig{APIKey: "k"}, index, 3), true},
		{"no api key", NewRAGGenerator(nil, ai.ChatConfig{}, index, 3), false},
		{"no index", NewRAGGenerator(nil, ai.ChatConfig{APIKey: "k"}, nil, 3), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.gen.Available(); got != tc.want {
				t.Errorf("Available() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRAGGeneratorEmptyIndexIsMiss(t *testing.T) {
	index := rag.NewIndex(stubEmbedder{}, &stubChunkStore{})
	gen := NewRAGGenerator(nil, ai.ChatConfig{APIKey: "k"}, index, 3)

	result, err := gen.Generate(context.Background(), "any question", nil)
	if err != nil {
		t.Fatalf("expected a clean miss, got %v", err)
	}
	if result.Hit() {
		t.Errorf("expected a miss on an empty index, got %q", result.Text)
	}
}

func TestGeminiGeneratorUnavailableWithoutKey(t *testing.T) {
	gen := NewGeminiGenerator(ai.NewGeminiClient(ai.GeminiConfig{}, 0), 5)
	if gen.Available() {
		t.Error("expected unavailable without an api key")
	}
}

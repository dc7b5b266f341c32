package rag

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func newTestIngestor(store *memoryChunkStore, chunkSize, overlap int) *Ingestor {
	index := NewIndex(&fakeEmbedder{fallback: []float32{1, 0}}, store)
	chunker := NewChunker(NewWordTokenizer(), chunkSize, overlap)
	return NewIngestor(index, chunker)
}

func TestIngestDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guide.md")
	if err := os.WriteFile(path, []byte(wordText(1200)), 0o644); err != nil {
		t.Fatal(err)
	}

	store := &memoryChunkStore{}
	ingestor := newTestIngestor(store, 500, 50)

	added, err := ingestor.IngestDirectory(context.Background(), dir, []string{"md"})
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if added != 3 {
		t.Fatalf("expected 3 chunks, got %d", added)
	}
	if len(store.chunks) != 3 {
		t.Fatalf("expected 3 stored chunks, got %d", len(store.chunks))
	}
	for i, chunk := range store.chunks {
		if chunk.ChunkIndex != i {
			t.Errorf("chunk %d: expected index %d, got %d", i, i, chunk.ChunkIndex)
		}
		if chunk.ChunkCount != 3 {
			t.Errorf("chunk %d: expected count 3, got %d", i, chunk.ChunkCount)
		}
		if chunk.Filename != "guide.md" {
			t.Errorf("chunk %d: expected filename guide.md, got %q", i, chunk.Filename)
		}
		if chunk.Filetype != "md" {
			t.Errorf("chunk %d: expected filetype md, got %q", i, chunk.Filetype)
		}
		if chunk.Source != path {
			t.Errorf("chunk %d: expected source %q, got %q", i, path, chunk.Source)
		}
	}
}

func TestIngestDirectoryNested(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "faq", "billing")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(nested, "refunds.txt"), []byte("refund policy details"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "skip.log"), []byte("not a document"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := &memoryChunkStore{}
	ingestor := newTestIngestor(store, 500, 50)

	added, err := ingestor.IngestDirectory(context.Background(), dir, []string{"txt"})
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if added != 1 {
		t.Fatalf("expected 1 chunk from the nested file, got %d", added)
	}
	if store.chunks[0].Content != "refund policy details" {
		t.Errorf("unexpected content %q", store.chunks[0].Content)
	}
}

func TestIngestDirectoryEmpty(t *testing.T) {
	store := &memoryChunkStore{}
	ingestor := newTestIngestor(store, 500, 50)

	added, err := ingestor.IngestDirectory(context.Background(), t.TempDir(), nil)
	if err != nil {
		t.Fatalf("expected no error for empty directory, got %v", err)
	}
	if added != 0 {
		t.Errorf("expected 0 chunks, got %d", added)
	}
}

func TestIngestDirectorySkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	// A directory whose name matches the glob: reading it fails, which must
	// skip the entry rather than abort the run.
	if err := os.MkdirAll(filepath.Join(dir, "broken.txt"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "good.txt"), []byte("usable document"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := &memoryChunkStore{}
	ingestor := newTestIngestor(store, 500, 50)

	added, err := ingestor.IngestDirectory(context.Background(), dir, []string{"txt"})
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if added != 1 {
		t.Errorf("expected the readable file only, got %d chunks", added)
	}
}

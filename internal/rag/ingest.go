package rag

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"mellow-ai/internal/pkg/pdfextract"
)

// DefaultExtensions are the file types ingested when none are configured.
var DefaultExtensions = []string{"txt", "md", "pdf", "html", "htm"}

// Ingestor walks a document tree, chunks every matching file, and bulk-loads
// the chunks into the index.
type Ingestor struct {
	index   *Index
	chunker *Chunker
}

func NewIngestor(index *Index, chunker *Chunker) *Ingestor {
	return &Ingestor{index: index, chunker: chunker}
}

// IngestDirectory processes every file under root whose extension matches,
// returning the number of chunks stored. A file that cannot be read is
// logged and skipped; it never aborts the run. No matching files is a
// zero-count result, not an error.
func (p *Ingestor) IngestDirectory(ctx context.Context, root string, extensions []string) (int, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	var files []string
	for _, ext := range extensions {
		pattern := filepath.Join(root, "**", "*."+strings.TrimPrefix(ext, "."))
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			log.Printf("glob %s failed: %v", pattern, err)
			continue
		}
		files = append(files, matches...)
	}

	var texts []string
	var metadatas []ChunkMetadata
	for _, path := range files {
		content, err := readDocument(path)
		if err != nil {
			log.Printf("read %s failed, skipping: %v", path, err)
			continue
		}
		if strings.TrimSpace(content) == "" {
			continue
		}

		chunks := p.chunker.Chunk(content)
		for i, chunk := range chunks {
			texts = append(texts, chunk)
			metadatas = append(metadatas, ChunkMetadata{
				Source:     path,
				Filename:   filepath.Base(path),
				Filetype:   strings.TrimPrefix(filepath.Ext(path), "."),
				ChunkIndex: i,
				ChunkCount: len(chunks),
			})
		}
	}
	if len(texts) == 0 {
		return 0, nil
	}

	if _, err := p.index.Add(ctx, texts, metadatas, nil); err != nil {
		return 0, err
	}
	return len(texts), nil
}

func readDocument(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		return pdfextract.ExtractText(f)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

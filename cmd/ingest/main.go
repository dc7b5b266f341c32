package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"mellow-ai/internal/ai"
	"mellow-ai/internal/config"
	"mellow-ai/internal/model"
	mysqlclient "mellow-ai/internal/platform/mysql"
	"mellow-ai/internal/rag"
	"mellow-ai/internal/repository"
)

func main() {
	var (
		dir        string
		chunkSize  int
		overlap    int
		extensions string
		reset      bool
	)
	flag.StringVar(&dir, "dir", "", "document directory to ingest (default from config)")
	flag.IntVar(&chunkSize, "chunk-size", 0, "tokens per chunk (default from config)")
	flag.IntVar(&overlap, "overlap", -1, "overlapping tokens between chunks (default from config)")
	flag.StringVar(&extensions, "extensions", "", "comma separated extensions, e.g. txt,md,pdf (default from config)")
	flag.BoolVar(&reset, "reset", false, "drop all indexed chunks before ingesting")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	if dir == "" {
		dir = cfg.RAG.DocsDir
	}
	if chunkSize <= 0 {
		chunkSize = cfg.RAG.ChunkSize
	}
	if overlap < 0 {
		overlap = cfg.RAG.ChunkOverlap
	}
	exts := cfg.RAG.Extensions
	if extensions != "" {
		exts = nil
		for _, part := range strings.Split(extensions, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				exts = append(exts, trimmed)
			}
		}
	}

	ctx := context.Background()

	db, err := mysqlclient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("connect mysql failed: %v", err)
	}
	if err := db.AutoMigrate(&model.DocumentChunk{}); err != nil {
		log.Fatalf("auto migrate chunk table failed: %v", err)
	}
	chunkRepo := repository.NewChunkRepository(db)

	if reset {
		if err := chunkRepo.DeleteAll(); err != nil {
			log.Fatalf("reset chunk table failed: %v", err)
		}
		log.Printf("cleared existing chunks")
	}

	tok, err := rag.NewTiktokenTokenizer()
	if err != nil {
		log.Fatalf("load tokenizer failed: %v", err)
	}
	chunker := rag.NewChunker(tok, chunkSize, overlap)

	llm := ai.NewOpenAICompatibleClient(0)
	embedder := ai.NewEmbeddingClient(llm, ai.EmbeddingConfig{
		BaseURL: cfg.OpenAI.BaseURL,
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.EmbeddingModel,
	})
	index := rag.NewIndex(embedder, chunkRepo)
	ingestor := rag.NewIngestor(index, chunker)

	log.Printf("ingesting %s (chunk size %d, overlap %d, extensions %v)", dir, chunkSize, overlap, exts)
	added, err := ingestor.IngestDirectory(ctx, dir, exts)
	if err != nil {
		log.Fatalf("ingest failed: %v", err)
	}

	total, err := index.Count(ctx)
	if err != nil {
		log.Fatalf("count indexed chunks failed: %v", err)
	}
	log.Printf("ingest complete: %d chunks added, %d chunks indexed in total", added, total)
}

package repository

import (
	"fmt"

	"gorm.io/gorm"

	"mellow-ai/internal/model"
)

type ChunkRepository struct {
	db *gorm.DB
}

func NewChunkRepository(db *gorm.DB) *ChunkRepository {
	return &ChunkRepository{db: db}
}

// CreateBatch inserts all chunks in a single statement so a failure leaves
// no partial batch behind.
func (r *ChunkRepository) CreateBatch(chunks []model.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	if err := r.db.Create(&chunks).Error; err != nil {
		return fmt.Errorf("create chunks batch failed: %w", err)
	}
	return nil
}

func (r *ChunkRepository) ListAll() ([]model.DocumentChunk, error) {
	var chunks []model.DocumentChunk
	if err := r.db.Find(&chunks).Error; err != nil {
		return nil, fmt.Errorf("list chunks failed: %w", err)
	}
	return chunks, nil
}

func (r *ChunkRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.DocumentChunk{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count chunks failed: %w", err)
	}
	return count, nil
}

// DeleteAll resets the collection. Only used by ingestion with --reset.
func (r *ChunkRepository) DeleteAll() error {
	if err := r.db.Where("1 = 1").Delete(&model.DocumentChunk{}).Error; err != nil {
		return fmt.Errorf("delete chunks failed: %w", err)
	}
	return nil
}

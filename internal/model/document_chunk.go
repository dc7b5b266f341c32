package model

import (
	"encoding/json"
	"time"
)

// DocumentChunk stores one retrieval unit: a token-bounded slice of a source
// document plus its embedding. Embedding is stored as a JSON array of float32
// for portability. Chunks are immutable once inserted.
type DocumentChunk struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Source     string    `gorm:"size:512" json:"source"`
	Filename   string    `gorm:"size:256" json:"filename"`
	Filetype   string    `gorm:"size:16" json:"filetype"`
	ChunkIndex int       `json:"chunk_index"`
	ChunkCount int       `json:"chunk_count"`
	Embedding  string    `gorm:"type:text" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// EmbeddingVector returns the parsed embedding slice; empty on parse error.
func (c *DocumentChunk) EmbeddingVector() []float32 {
	if c.Embedding == "" {
		return nil
	}
	var v []float32
	_ = json.Unmarshal([]byte(c.Embedding), &v)
	return v
}

// SetEmbedding stores the embedding as JSON.
func (c *DocumentChunk) SetEmbedding(vec []float32) {
	if len(vec) == 0 {
		c.Embedding = "[]"
		return
	}
	b, _ := json.Marshal(vec)
	c.Embedding = string(b)
}

package rag

const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 50
)

// Chunker splits raw text into overlapping token-bounded chunks.
type Chunker struct {
	tok       Tokenizer
	chunkSize int
	overlap   int
}

// NewChunker builds a chunker over the given tokenizer. Overlap must be
// strictly smaller than chunkSize; callers are expected to guard this, the
// chunker does not validate it at runtime.
func NewChunker(tok Tokenizer, chunkSize, overlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultChunkOverlap
	}
	return &Chunker{tok: tok, chunkSize: chunkSize, overlap: overlap}
}

// Chunk returns the text split into windows of at most chunkSize tokens,
// consecutive windows overlapping by exactly overlap tokens. Text that fits
// in a single window is returned verbatim, skipping the decode round-trip.
// Empty text yields no chunks.
func (c *Chunker) Chunk(text string) []string {
	if text == "" {
		return nil
	}

	tokens := c.tok.Encode(text)
	if len(tokens) <= c.chunkSize {
		return []string{text}
	}

	stride := c.chunkSize - c.overlap
	var chunks []string
	for i := 0; ; i += stride {
		end := i + c.chunkSize
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, c.tok.Decode(tokens[i:end]))
		if i+c.chunkSize >= len(tokens) {
			break
		}
	}
	return chunks
}

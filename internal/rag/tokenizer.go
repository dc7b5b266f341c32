package rag

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// Tokenizer maps text to a sequence of token ids and back. The chunker only
// needs that Decode of a contiguous Encode slice yields readable text; the
// exact scheme is an implementation detail of the configured tokenizer.
type Tokenizer interface {
	Encode(text string) []int
	Decode(tokens []int) string
}

// TiktokenTokenizer wraps the cl100k_base BPE encoding, the same scheme the
// embedding models count tokens with.
type TiktokenTokenizer struct {
	enc *tiktoken.Tiktoken
}

func NewTiktokenTokenizer() (*TiktokenTokenizer, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("load cl100k_base encoding failed: %w", err)
	}
	return &TiktokenTokenizer{enc: enc}, nil
}

func (t *TiktokenTokenizer) Encode(text string) []int {
	return t.enc.Encode(text, nil, nil)
}

func (t *TiktokenTokenizer) Decode(tokens []int) string {
	return t.enc.Decode(tokens)
}

// WordTokenizer treats whitespace-separated words as tokens. It needs no
// vocabulary files, which makes it the offline and test fallback when the
// BPE encoding cannot be loaded.
type WordTokenizer struct {
	mu    sync.Mutex
	ids   map[string]int
	words []string
}

func NewWordTokenizer() *WordTokenizer {
	return &WordTokenizer{ids: make(map[string]int)}
}

func (t *WordTokenizer) Encode(text string) []int {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	tokens := make([]int, len(fields))
	for i, word := range fields {
		id, ok := t.ids[word]
		if !ok {
			id = len(t.words)
			t.ids[word] = id
			t.words = append(t.words, word)
		}
		tokens[i] = id
	}
	return tokens
}

func (t *WordTokenizer) Decode(tokens []int) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	parts := make([]string, 0, len(tokens))
	for _, id := range tokens {
		if id >= 0 && id < len(t.words) {
			parts = append(parts, t.words[id])
		}
	}
	return strings.Join(parts, " ")
}

package rag

import (
	"strings"

	"mellow-ai/internal/model"
)

// chunkSeparator keeps unrelated chunks from bleeding into each other inside
// a prompt.
const chunkSeparator = "\n\n---\n\n"

// BuildDocumentContext joins retrieved chunk texts into one context block.
func BuildDocumentContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}
	texts := make([]string, len(results))
	for i := range results {
		texts[i] = results[i].Content
	}
	return strings.Join(texts, chunkSeparator)
}

// BuildHistoryContext renders up to limit recent turns as a transcript.
// Turns arrive newest-first (storage order); the transcript reads oldest
// first, ending with a cue line for the upcoming user message.
func BuildHistoryContext(turns []model.Conversation, limit int) string {
	if len(turns) == 0 {
		return "This is the beginning of a new conversation."
	}
	if limit > 0 && len(turns) > limit {
		turns = turns[:limit]
	}

	parts := []string{"Recent conversation history:"}
	for i := len(turns) - 1; i >= 0; i-- {
		parts = append(parts, "User: "+turns[i].UserMessage)
		parts = append(parts, "Assistant: "+turns[i].AIResponse)
	}
	parts = append(parts, "\nContinuing the conversation:")
	return strings.Join(parts, "\n")
}

package app

import (
	"context"
	"fmt"
	"strings"

	"mellow-ai/internal/ai"
	"mellow-ai/internal/model"
	"mellow-ai/internal/rag"
)

const supportSystemPrompt = `You are Mellow, a compassionate AI assistant designed to provide mental health support and emotional guidance. Your role is to:

1. Listen empathetically and without judgment
2. Provide emotional support and validation
3. Help users explore their thoughts and feelings
4. Offer gentle guidance and coping strategies
5. Encourage professional help when appropriate

Guidelines:
- Always be warm, understanding, and non-judgmental
- Validate the user's feelings and experiences
- Ask thoughtful follow-up questions to help users reflect
- Maintain appropriate boundaries - you are supportive but not a replacement for therapy
- Keep responses conversational and not overly clinical
- If the user appears to be in crisis or mentions self-harm, gently suggest professional help`

const ragSystemPrompt = `You are Mellow, an empathetic AI mental health assistant. Use the provided context to inform your response, but always prioritize being supportive and validating of the user's feelings. If the context does not provide relevant information, be honest about your limitations while remaining supportive. Never claim to be a licensed therapist or medical professional.`

// GeminiGenerator is the first link of the fallback chain. It prompts Gemini
// with the recent conversation transcript.
type GeminiGenerator struct {
	client       *ai.GeminiClient
	historyLimit int
}

func NewGeminiGenerator(client *ai.GeminiClient, historyLimit int) *GeminiGenerator {
	if historyLimit <= 0 {
		historyLimit = 5
	}
	return &GeminiGenerator{client: client, historyLimit: historyLimit}
}

func (g *GeminiGenerator) Name() string { return "gemini" }

func (g *GeminiGenerator) Available() bool { return g.client.Available() }

func (g *GeminiGenerator) Generate(ctx context.Context, message string, history []model.Conversation) (GenerationResult, error) {
	prompt := fmt.Sprintf("%s\n\n%s\n\nUser: %s\n\nAssistant:",
		supportSystemPrompt,
		rag.BuildHistoryContext(history, g.historyLimit),
		message,
	)
	text, err := g.client.GenerateContent(ctx, prompt)
	if err != nil {
		return GenerationResult{}, err
	}
	return GenerationResult{Text: text}, nil
}

// RAGGenerator retrieves the chunks most similar to the message and asks an
// OpenAI-compatible model to answer with them as context. An empty index is
// a miss so the chain can move on rather than prompt without grounding.
type RAGGenerator struct {
	llm     *ai.OpenAICompatibleClient
	chatCfg ai.ChatConfig
	index   *rag.Index
	topK    int
}

func NewRAGGenerator(llm *ai.OpenAICompatibleClient, chatCfg ai.ChatConfig, index *rag.Index, topK int) *RAGGenerator {
	if topK <= 0 {
		topK = 3
	}
	return &RAGGenerator{llm: llm, chatCfg: chatCfg, index: index, topK: topK}
}

func (g *RAGGenerator) Name() string { return "rag" }

func (g *RAGGenerator) Available() bool {
	return g.index != nil && strings.TrimSpace(g.chatCfg.APIKey) != ""
}

func (g *RAGGenerator) Generate(ctx context.Context, message string, history []model.Conversation) (GenerationResult, error) {
	count, err := g.index.Count(ctx)
	if err != nil {
		return GenerationResult{}, err
	}
	if count == 0 {
		return GenerationResult{}, nil
	}

	results, err := g.index.Search(ctx, message, g.topK)
	if err != nil {
		return GenerationResult{}, err
	}

	messages := []ai.ChatMessage{
		{Role: "system", Content: ragSystemPrompt},
		{Role: "system", Content: "Context information is below:\n\n" + rag.BuildDocumentContext(results) + "\n\nGiven this information, answer the user's message."},
		{Role: "user", Content: message},
	}
	answer, err := g.llm.Complete(ctx, g.chatCfg, messages)
	if err != nil {
		return GenerationResult{}, err
	}
	return GenerationResult{Text: strings.TrimSpace(answer)}, nil
}

package app

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"mellow-ai/internal/model"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrMessageEmpty         = errors.New("message content is empty")
	ErrMessageEnqueue       = errors.New("message enqueue failed")
	ErrConversationNotFound = errors.New("conversation not found")
)

// ConversationStore is the persistence capability the chat service consumes.
// The GORM conversation repository implements it.
type ConversationStore interface {
	ListRecent(limit int) ([]model.Conversation, error)
	GetByID(id uint) (*model.Conversation, error)
	DeleteByID(id uint) (bool, error)
}

// AsyncTurnPublisher hands completed turns to the persistence queue.
type AsyncTurnPublisher interface {
	Publish(ctx context.Context, turn model.Conversation) error
}

// HistoryCache fronts the conversation store for the recent-turns window.
type HistoryCache interface {
	GetRecent(ctx context.Context) ([]model.Conversation, bool, error)
	SetRecent(ctx context.Context, turns []model.Conversation) error
	Invalidate(ctx context.Context) error
	MarkDirty(ctx context.Context) error
	IsDirty(ctx context.Context) (bool, error)
}

type ChatService struct {
	turns        ConversationStore
	publisher    AsyncTurnPublisher
	historyCache HistoryCache
	chain        *FallbackChain
	historyLimit int
}

func NewChatService(
	turns ConversationStore,
	publisher AsyncTurnPublisher,
	historyCache HistoryCache,
	chain *FallbackChain,
	historyLimit int,
) *ChatService {
	if historyLimit <= 0 {
		historyLimit = 5
	}
	return &ChatService{
		turns:        turns,
		publisher:    publisher,
		historyCache: historyCache,
		chain:        chain,
		historyLimit: historyLimit,
	}
}

// SendMessage runs the fallback chain for the message and enqueues the
// completed turn for persistence. The reply is never empty; a history fetch
// failure degrades to an empty context instead of failing the request.
func (s *ChatService) SendMessage(ctx context.Context, content string) (*model.Conversation, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrMessageEmpty
	}

	history := s.recentHistory(ctx)
	reply := s.chain.Respond(ctx, content, history)

	turn := model.Conversation{
		UserMessage: content,
		AIResponse:  reply,
		CreatedAt:   time.Now(),
	}
	if s.publisher == nil {
		return nil, ErrMessageEnqueue
	}
	if s.historyCache != nil {
		_ = s.historyCache.MarkDirty(ctx)
		_ = s.historyCache.Invalidate(ctx)
	}
	if err := s.publisher.Publish(ctx, turn); err != nil {
		return nil, ErrMessageEnqueue
	}
	return &turn, nil
}

// Conversations returns the most recent turns, newest first.
func (s *ChatService) Conversations(limit int) ([]model.Conversation, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.turns.ListRecent(limit)
}

func (s *ChatService) GetConversation(id uint) (*model.Conversation, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	turn, err := s.turns.GetByID(id)
	if err != nil {
		return nil, err
	}
	if turn == nil {
		return nil, ErrConversationNotFound
	}
	return turn, nil
}

func (s *ChatService) DeleteConversation(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrInvalidInput
	}
	deleted, err := s.turns.DeleteByID(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrConversationNotFound
	}
	if s.historyCache != nil {
		_ = s.historyCache.Invalidate(ctx)
	}
	return nil
}

// recentHistory fetches the context window, cache first. Errors degrade to an
// empty history so the chain still answers.
func (s *ChatService) recentHistory(ctx context.Context) []model.Conversation {
	if s.historyCache != nil {
		if dirty, err := s.historyCache.IsDirty(ctx); err == nil && !dirty {
			if cached, hit, err := s.historyCache.GetRecent(ctx); err == nil && hit {
				return cached
			}
		}
	}

	history, err := s.turns.ListRecent(s.historyLimit)
	if err != nil {
		log.Printf("fetch conversation history failed: %v", err)
		return nil
	}
	if s.historyCache != nil {
		if dirty, err := s.historyCache.IsDirty(ctx); err == nil && !dirty {
			_ = s.historyCache.SetRecent(ctx, history)
		}
	}
	return history
}

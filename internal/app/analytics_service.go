package app

import (
	"math"
	"sort"
	"strings"
	"time"

	"mellow-ai/internal/repository"
	"mellow-ai/internal/responder"
)

// AnalyticsStore is the slice of the conversation repository analytics needs.
type AnalyticsStore interface {
	Count() (int64, error)
	CountSince(since time.Time) (int64, error)
	RecentUserMessages(limit int) ([]string, error)
	DailyCounts(since time.Time) ([]repository.DailyCount, error)
}

type AnalyticsService struct {
	store AnalyticsStore
}

func NewAnalyticsService(store AnalyticsStore) *AnalyticsService {
	return &AnalyticsService{store: store}
}

type AnalyticsOverview struct {
	TotalConversations  int64    `json:"total_conversations"`
	RecentConversations int64    `json:"recent_conversations"`
	CommonTopics        []string `json:"common_topics"`
}

// Overview reports conversation totals, last-24h volume, and the most common
// topics across recent user messages.
func (s *AnalyticsService) Overview() (*AnalyticsOverview, error) {
	total, err := s.store.Count()
	if err != nil {
		return nil, err
	}
	recent, err := s.store.CountSince(time.Now().Add(-24 * time.Hour))
	if err != nil {
		return nil, err
	}
	messages, err := s.store.RecentUserMessages(100)
	if err != nil {
		return nil, err
	}
	return &AnalyticsOverview{
		TotalConversations:  total,
		RecentConversations: recent,
		CommonTopics:        ExtractCommonTopics(messages),
	}, nil
}

type ConversationTrends struct {
	PeriodDays int                    `json:"period_days"`
	Daily      []repository.DailyCount `json:"daily_conversations"`
}

func (s *AnalyticsService) Trends(days int) (*ConversationTrends, error) {
	if days <= 0 {
		days = 7
	}
	daily, err := s.store.DailyCounts(time.Now().AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}
	if daily == nil {
		daily = []repository.DailyCount{}
	}
	return &ConversationTrends{PeriodDays: days, Daily: daily}, nil
}

type MessageInsights struct {
	AverageMessageLength float64        `json:"average_message_length"`
	TotalAnalyzed        int            `json:"total_analyzed"`
	EmotionDistribution  map[string]int `json:"emotion_distribution"`
}

// Insights analyzes recent user messages for length and emotion keyword
// frequency. The emotion vocabulary is the rule responder's.
func (s *AnalyticsService) Insights() (*MessageInsights, error) {
	messages, err := s.store.RecentUserMessages(100)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return &MessageInsights{EmotionDistribution: map[string]int{}}, nil
	}

	totalWords := 0
	emotionCounts := make(map[string]int)
	for _, message := range messages {
		totalWords += len(strings.Fields(message))
		lower := strings.ToLower(message)
		for _, emotion := range responder.EmotionVocabulary() {
			if strings.Contains(lower, emotion) {
				emotionCounts[emotion]++
			}
		}
	}

	avg := float64(totalWords) / float64(len(messages))
	return &MessageInsights{
		AverageMessageLength: math.Round(avg*100) / 100,
		TotalAnalyzed:        len(messages),
		EmotionDistribution:  emotionCounts,
	}, nil
}

var topicStopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"i": {}, "you": {}, "we": {}, "they": {}, "he": {}, "she": {}, "it": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "could": {}, "should": {}, "may": {},
	"might": {}, "can": {}, "am": {}, "this": {}, "that": {}, "these": {},
	"those": {},
}

// ExtractCommonTopics returns up to five of the most frequent meaningful
// words across the messages. Words of three letters or fewer and stop words
// are ignored; ties break alphabetically so the result is deterministic.
func ExtractCommonTopics(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, message := range messages {
		for _, word := range strings.Fields(strings.ToLower(message)) {
			word = keepAlphanumeric(word)
			if len(word) <= 3 {
				continue
			}
			if _, stop := topicStopWords[word]; stop {
				continue
			}
			counts[word]++
		}
	}

	topics := make([]string, 0, len(counts))
	for word := range counts {
		topics = append(topics, word)
	}
	sort.Slice(topics, func(i, j int) bool {
		if counts[topics[i]] != counts[topics[j]] {
			return counts[topics[i]] > counts[topics[j]]
		}
		return topics[i] < topics[j]
	})
	if len(topics) > 5 {
		topics = topics[:5]
	}
	return topics
}

func keepAlphanumeric(word string) string {
	var b strings.Builder
	for _, r := range word {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

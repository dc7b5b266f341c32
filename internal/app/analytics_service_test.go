package app

import (
	"testing"
	"time"

	"mellow-ai/internal/repository"
)

type fakeAnalyticsStore struct {
	total    int64
	recent   int64
	messages []string
	daily    []repository.DailyCount
	err      error
}

func (f *fakeAnalyticsStore) Count() (int64, error) {
	return f.total, f.err
}

func (f *fakeAnalyticsStore) CountSince(since time.Time) (int64, error) {
	return f.recent, f.err
}

func (f *fakeAnalyticsStore) RecentUserMessages(limit int) ([]string, error) {
	return f.messages, f.err
}

func (f *fakeAnalyticsStore) DailyCounts(since time.Time) ([]repository.DailyCount, error) {
	return f.daily, f.err
}

func TestExtractCommonTopics(t *testing.T) {
	cases := []struct {
		name     string
		messages []string
		want     []string
	}{
		{
			name: "frequency then alphabetical",
			messages: []string{
				"deadline pressure at work",
				"work deadline again",
				"thinking about work",
			},
			want: []string{"work", "deadline", "about", "again", "pressure"},
		},
		{
			name:     "stop words and short words ignored",
			messages: []string{"I am the one who has been having trouble"},
			want:     []string{"having", "trouble"},
		},
		{
			name:     "punctuation stripped",
			messages: []string{"deadlines, deadlines! always deadlines."},
			want:     []string{"deadlines", "always"},
		},
		{
			name:     "capped at five",
			messages: []string{"apple banana cherry durian elderberry fig grape"},
			want:     []string{"apple", "banana", "cherry", "durian", "elderberry"},
		},
		{
			name:     "no messages",
			messages: nil,
			want:     nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractCommonTopics(tc.messages)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("expected %v, got %v", tc.want, got)
					break
				}
			}
		})
	}
}

func TestAnalyticsOverview(t *testing.T) {
	store := &fakeAnalyticsStore{
		total:  42,
		recent: 7,
		messages: []string{
			"worried about the deadline",
			"that deadline again",
		},
	}
	service := NewAnalyticsService(store)

	overview, err := service.Overview()
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if overview.TotalConversations != 42 {
		t.Errorf("expected 42 total, got %d", overview.TotalConversations)
	}
	if overview.RecentConversations != 7 {
		t.Errorf("expected 7 recent, got %d", overview.RecentConversations)
	}
	if len(overview.CommonTopics) == 0 || overview.CommonTopics[0] != "deadline" {
		t.Errorf("expected deadline as the top topic, got %v", overview.CommonTopics)
	}
}

func TestAnalyticsTrendsDefaultsPeriod(t *testing.T) {
	store := &fakeAnalyticsStore{
		daily: []repository.DailyCount{{Date: "2026-08-28", Count: 3}},
	}
	service := NewAnalyticsService(store)

	trends, err := service.Trends(0)
	if err != nil {
		t.Fatalf("trends failed: %v", err)
	}
	if trends.PeriodDays != 7 {
		t.Errorf("expected default 7 day period, got %d", trends.PeriodDays)
	}
	if len(trends.Daily) != 1 || trends.Daily[0].Count != 3 {
		t.Errorf("unexpected daily counts %v", trends.Daily)
	}
}

func TestAnalyticsTrendsEmptyIsNotNil(t *testing.T) {
	service := NewAnalyticsService(&fakeAnalyticsStore{})

	trends, err := service.Trends(30)
	if err != nil {
		t.Fatalf("trends failed: %v", err)
	}
	if trends.Daily == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestAnalyticsInsights(t *testing.T) {
	store := &fakeAnalyticsStore{
		messages: []string{
			"feeling anxious about everything",
			"still anxious and a little sad",
			"better today",
		},
	}
	service := NewAnalyticsService(store)

	insights, err := service.Insights()
	if err != nil {
		t.Fatalf("insights failed: %v", err)
	}
	if insights.TotalAnalyzed != 3 {
		t.Errorf("expected 3 analyzed, got %d", insights.TotalAnalyzed)
	}
	if insights.AverageMessageLength != 4 {
		t.Errorf("expected average 4, got %v", insights.AverageMessageLength)
	}
	if insights.EmotionDistribution["anxious"] != 2 {
		t.Errorf("expected anxious counted twice, got %d", insights.EmotionDistribution["anxious"])
	}
	if insights.EmotionDistribution["sad"] != 1 {
		t.Errorf("expected sad counted once, got %d", insights.EmotionDistribution["sad"])
	}
}

func TestAnalyticsInsightsNoMessages(t *testing.T) {
	service := NewAnalyticsService(&fakeAnalyticsStore{})

	insights, err := service.Insights()
	if err != nil {
		t.Fatalf("insights failed: %v", err)
	}
	if insights.TotalAnalyzed != 0 {
		t.Errorf("expected 0 analyzed, got %d", insights.TotalAnalyzed)
	}
	if insights.EmotionDistribution == nil {
		t.Error("expected empty distribution map, got nil")
	}
}

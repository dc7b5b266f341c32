package responder

import (
	"strings"
	"testing"

	"mellow-ai/internal/model"
)

func TestDetectIntent(t *testing.T) {
	cases := []struct {
		name     string
		message  string
		greeting bool
		question bool
		emotions []string
		short    bool
	}{
		{
			name:     "greeting",
			message:  "hello there",
			greeting: true,
			short:    true,
		},
		{
			name:     "question",
			message:  "why do I keep feeling so low lately",
			question: true,
		},
		{
			name:     "greeting and question",
			message:  "hey, what should I try next time around",
			greeting: true,
			question: true,
		},
		{
			name:     "multiple emotions keep vocabulary order",
			message:  "so worried and honestly pretty sad right now",
			emotions: []string{"sad", "worried"},
		},
		{
			name:    "short response",
			message: "yes exactly",
			short:   true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			intent := DetectIntent(tc.message)
			if intent.IsGreeting != tc.greeting {
				t.Errorf("IsGreeting = %v, want %v", intent.IsGreeting, tc.greeting)
			}
			if intent.IsQuestion != tc.question {
				t.Errorf("IsQuestion = %v, want %v", intent.IsQuestion, tc.question)
			}
			if intent.IsShortResponse != tc.short {
				t.Errorf("IsShortResponse = %v, want %v", intent.IsShortResponse, tc.short)
			}
			if len(intent.DetectedEmotions) != len(tc.emotions) {
				t.Fatalf("DetectedEmotions = %v, want %v", intent.DetectedEmotions, tc.emotions)
			}
			for i := range tc.emotions {
				if intent.DetectedEmotions[i] != tc.emotions[i] {
					t.Errorf("DetectedEmotions = %v, want %v", intent.DetectedEmotions, tc.emotions)
					break
				}
			}
		})
	}
}

func TestRespondGreeting(t *testing.T) {
	got := Respond("hello there", nil)
	if got != greetingReply {
		t.Errorf("expected greeting reply, got %q", got)
	}
}

func TestRespondQuestionEchoesMessage(t *testing.T) {
	message := "why do I keep feeling so low lately"
	got := Respond(message, nil)
	if !strings.Contains(got, "thoughtful question") {
		t.Errorf("expected question reply, got %q", got)
	}
	if !strings.Contains(got, message) {
		t.Errorf("expected the message echoed back, got %q", got)
	}
}

func TestRespondEmotion(t *testing.T) {
	got := Respond("I feel anxious today", nil)
	if got != emotionReplies["anxious"] {
		t.Errorf("expected anxious reply, got %q", got)
	}
}

func TestRespondEmotionVocabularyOrderWins(t *testing.T) {
	// "worried" appears first in the message, but "sad" comes first in the
	// vocabulary and takes priority.
	got := Respond("so worried and also very sad", nil)
	if got != emotionReplies["sad"] {
		t.Errorf("expected sad reply, got %q", got)
	}
}

func TestRespondContinuation(t *testing.T) {
	history := []model.Conversation{
		{UserMessage: "my project deadline keeps slipping", AIResponse: "tell me more"},
	}
	got := Respond("yes, the project", history)
	if got != continuationReply {
		t.Errorf("expected continuation reply, got %q", got)
	}
}

func TestRespondShortWithoutSharedWordsIsSupportive(t *testing.T) {
	history := []model.Conversation{
		{UserMessage: "my project deadline keeps slipping", AIResponse: "tell me more"},
	}
	got := Respond("something else entirely", history)
	if got == continuationReply {
		t.Errorf("expected supportive reply, got continuation")
	}
	if !strings.Contains(got, "'something else entirely'") {
		t.Errorf("expected the message quoted in a supportive template, got %q", got)
	}
}

func TestRespondSupportiveTemplateDeterministic(t *testing.T) {
	message := "stuff"

	first := Respond(message, nil)
	second := Respond(message, nil)
	if first != second {
		t.Errorf("expected deterministic reply, got %q then %q", first, second)
	}

	// len("stuff") % 4 == 1 selects the second template.
	want := strings.Replace(supportiveTemplates[1], "%s", message, 1)
	if first != want {
		t.Errorf("expected %q, got %q", want, first)
	}
}

func TestRespondNeverEmpty(t *testing.T) {
	messages := []string{
		"hello",
		"what now",
		"I am frustrated",
		"ok",
		"stuff",
		"a very long ramble about nothing in particular at all",
	}
	for _, message := range messages {
		if got := Respond(message, nil); strings.TrimSpace(got) == "" {
			t.Errorf("empty reply for %q", message)
		}
	}
}

package responder

import "strings"

// Vocabularies are fixed closed sets. Emotion order matters: when a message
// contains several emotion keywords, the first one in this list wins, not the
// first occurrence in the message.
var (
	greetingVocabulary = []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening"}
	questionVocabulary = []string{"how", "what", "when", "where", "why", "who"}
	emotionVocabulary  = []string{"sad", "happy", "angry", "frustrated", "excited", "worried", "anxious"}
)

// EmotionVocabulary returns the fixed emotion keyword list.
func EmotionVocabulary() []string {
	out := make([]string, len(emotionVocabulary))
	copy(out, emotionVocabulary)
	return out
}

// Intent is the classification of a single message. Computed fresh per
// request, never persisted.
type Intent struct {
	IsGreeting       bool
	IsQuestion       bool
	DetectedEmotions []string
	MessageLength    int
	IsShortResponse  bool
}

// DetectIntent classifies a message by case-insensitive substring matching
// against the fixed vocabularies. A message under five words counts as a
// short response.
func DetectIntent(message string) Intent {
	lower := strings.TrimSpace(strings.ToLower(message))
	words := strings.Fields(message)

	var emotions []string
	for _, emotion := range emotionVocabulary {
		if strings.Contains(lower, emotion) {
			emotions = append(emotions, emotion)
		}
	}

	return Intent{
		IsGreeting:       containsAny(lower, greetingVocabulary),
		IsQuestion:       containsAny(lower, questionVocabulary),
		DetectedEmotions: emotions,
		MessageLength:    len(words),
		IsShortResponse:  len(words) < 5,
	}
}

func containsAny(s string, vocabulary []string) bool {
	for _, term := range vocabulary {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

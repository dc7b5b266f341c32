// Package responder implements the deterministic rule-based reply engine used
// as the terminal link of the response fallback chain. It always produces a
// non-empty supportive reply, so the chain can promise one to the caller no
// matter how many upstream providers fail.
package responder

import (
	"fmt"
	"strings"

	"mellow-ai/internal/model"
)

const greetingReply = "Hello! I'm here to listen and support you. How are you feeling today?"

const continuationReply = "I see you're continuing our previous conversation. Please feel free to share more about what you're thinking or feeling."

var emotionReplies = map[string]string{
	"sad":        "I hear that you're feeling sad. That's completely valid. Would you like to talk about what's making you feel this way?",
	"happy":      "I'm glad to hear you're feeling happy! It's wonderful to share positive moments. What's bringing you joy today?",
	"angry":      "It sounds like you're feeling angry. Those feelings are important and valid. Sometimes it helps to talk through what's causing these feelings.",
	"frustrated": "Frustration can be really difficult to deal with. I'm here to listen. What's been causing you to feel this way?",
	"excited":    "Your excitement is contagious! I'd love to hear more about what has you feeling so excited.",
	"worried":    "I understand that you're feeling worried. It's natural to have concerns. Would you like to share what's on your mind?",
	"anxious":    "Anxiety can be overwhelming. Remember that you're not alone, and it's okay to feel this way. What's been making you feel anxious?",
}

var supportiveTemplates = []string{
	"Thank you for sharing that with me. Your thoughts about '%s' are important. How does talking about this make you feel?",
	"I appreciate you opening up about '%s'. I'm here to listen without judgment. What would be most helpful for you right now?",
	"It sounds like you have a lot on your mind regarding '%s'. Sometimes it helps to talk through our thoughts. I'm here for you.",
	"I hear you talking about '%s'. Your feelings and experiences are valid. Would you like to explore this topic further?",
}

// Respond classifies the message and picks a reply by the fixed priority
// ladder: greeting, question, emotion, conversation continuation, then a
// generic supportive template. Pure given its inputs and never empty.
// History is ordered newest-first.
func Respond(message string, history []model.Conversation) string {
	intent := DetectIntent(message)

	if intent.IsGreeting {
		return greetingReply
	}

	if intent.IsQuestion {
		return fmt.Sprintf("That's a thoughtful question about '%s'. While I don't have all the answers, I'm here to help you explore your thoughts and feelings about this.", message)
	}

	if len(intent.DetectedEmotions) > 0 {
		return emotionReply(intent.DetectedEmotions[0])
	}

	if len(history) > 0 && intent.IsShortResponse && continuesConversation(message, history[0].UserMessage) {
		return continuationReply
	}

	return supportiveReply(message)
}

func emotionReply(emotion string) string {
	if reply, ok := emotionReplies[emotion]; ok {
		return reply
	}
	return fmt.Sprintf("I notice you mentioned feeling %s. I'm here to listen and support you through whatever you're experiencing.", emotion)
}

// continuesConversation reports whether any word of the new message appears
// in the previous user message.
func continuesConversation(message, previous string) bool {
	previousLower := strings.ToLower(previous)
	for _, word := range strings.Fields(strings.ToLower(message)) {
		if strings.Contains(previousLower, word) {
			return true
		}
	}
	return false
}

// supportiveReply picks one of the generic templates by message length. The
// modulo pick is deliberate: it gives variety without randomness, and the
// same input always selects the same template.
func supportiveReply(message string) string {
	index := len(message) % len(supportiveTemplates)
	return fmt.Sprintf(supportiveTemplates[index], message)
}

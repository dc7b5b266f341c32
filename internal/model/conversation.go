package model

import "time"

// Conversation is one completed turn: the user's message and the reply
// produced for it. Rows are append-only; analytics reads them in bulk.
type Conversation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserMessage string    `gorm:"type:text;not null" json:"user_message"`
	AIResponse  string    `gorm:"type:text;not null" json:"ai_response"`
	CreatedAt   time.Time `gorm:"index" json:"timestamp"`
}

package chat

import "time"

// Message is one append-only transcript unit.
type Message struct {
	ID        string    `json:"id"`
	Seq       int       `json:"seq"`
	SessionID string    `json:"sessionId"`
	Text      string    `json:"text"`
	IsUser    bool      `json:"isUser"`
	Timestamp time.Time `json:"timestamp"`
	GameRef   string    `json:"gameRef,omitempty"`
}

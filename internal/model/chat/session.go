package chat

import "time"

// State tags where a conversation sits in its reply cycle.
type State string

const (
	StateIdle             State = "idle"
	StateAwaitingResponse State = "awaiting-response"
)

// Session captures a transient anonymous conversation as seen by clients.
type Session struct {
	ID        string    `json:"id"`
	State     State     `json:"state"`
	CreatedAt time.Time `json:"createdAt"`
	Messages  []Message `json:"messages,omitempty"`
}

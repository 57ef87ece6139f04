package models

import "time"

// Origin tells who wrote a chat message.
type Origin string

const (
	OriginUser      Origin = "user"
	OriginAssistant Origin = "assistant"
)

// ChatMessage is one entry of the assistant conversation.
type ChatMessage struct {
	ID     string    `json:"id"`
	Text   string    `json:"text"`
	Origin Origin    `json:"origin"`
	SentAt time.Time `json:"sent_at"`
}

// IsUser reports whether the message was typed by the user.
func (m ChatMessage) IsUser() bool {
	return m.Origin == OriginUser
}

// ChatRequest is the body of a chat request.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	Response string `json:"response"`
}

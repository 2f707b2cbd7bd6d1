package domain

import "context"

// Message is one turn of a chat exchange with a language model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LLMClient defines the capability to send chat messages to a language
// model and receive the assistant's textual reply.
type LLMClient interface {
	Chat(ctx context.Context, messages []Message) (string, error)
	Version() string
}

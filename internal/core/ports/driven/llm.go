package driven

import "context"

// LLMService provides chat-style language model operations.
// This is an optional service - every caller has a deterministic fallback.
type LLMService interface {
	// Chat sends a conversation and returns the assistant's reply.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the underlying model.
	ModelName() string

	// Ping validates the LLM service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a message in a chat conversation.
type ChatMessage struct {
	// Role is "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatOptions configures chat completion.
type ChatOptions struct {
	// MaxTokens limits the response length. Zero means provider default.
	MaxTokens int

	// Temperature controls randomness. Nil means provider default; a pointer
	// to 0 requests deterministic output and must be sent as is.
	Temperature *float64

	// JSON asks the provider for a single JSON object as the reply.
	JSON bool
}

// Deterministic returns options for classification and extraction calls.
func Deterministic() ChatOptions {
	t := 0.0
	return ChatOptions{Temperature: &t, JSON: true, MaxTokens: 500}
}

// Creative returns options for prose such as recommendations.
func Creative(maxTokens int) ChatOptions {
	t := 0.7
	return ChatOptions{Temperature: &t, MaxTokens: maxTokens}
}

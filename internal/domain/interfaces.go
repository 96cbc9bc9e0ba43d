package domain

import "context"

// ChatClient issues one blocking chat-completion exchange with the model
// provider. Implementations must bound the call with a timeout.
type ChatClient interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

package completion

import (
	"context"
	"fmt"
)

// Message is one prior turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Service is the text-generation capability: given prior turns and a new
// prompt, return the generated reply.
type Service interface {
	Complete(ctx context.Context, history []Message, prompt string) (string, error)
}

// RemoteError is a non-success response from the completion service. Body
// carries the raw response for diagnosis, including the case where the body
// could not be decoded structurally.
type RemoteError struct {
	StatusCode int
	Body       string
	Reason     string
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("completion service: %s: HTTP %d - %s", e.Reason, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("completion service: %s: %s", e.Reason, e.Body)
}

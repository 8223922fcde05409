package completion

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// geminiService is an alternative completion backend using the Gemini API,
// rotating through the supplied API keys on quota errors.
type geminiService struct {
	model string

	mu         sync.Mutex
	apiKeys    []string
	currentKey int
}

// NewGemini creates a Service backed by Gemini. At least one API key is
// required.
func NewGemini(apiKeys []string, model string) (Service, error) {
	keys := make([]string, 0, len(apiKeys))
	for _, k := range apiKeys {
		if strings.TrimSpace(k) != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &geminiService{
		apiKeys: keys,
		model:   model,
	}, nil
}

// Complete sends the conversation to Gemini. Prior turns are folded into the
// prompt text since each summarization call is single-turn anyway. Rotates
// API keys on 429 / quota errors.
func (s *geminiService) Complete(ctx context.Context, history []Message, prompt string) (string, error) {
	var sb strings.Builder
	for _, msg := range history {
		sb.WriteString(msg.Role)
		sb.WriteString(": ")
		sb.WriteString(msg.Content)
		sb.WriteString("\n\n")
	}
	sb.WriteString(prompt)
	fullPrompt := sb.String()

	attempts := len(s.apiKeys)
	var lastErr error

	for range attempts {
		key := s.nextKey(false)

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			s.nextKey(true)
			continue
		}

		result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(fullPrompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				s.nextKey(true)
				lastErr = err
				continue
			}
			return "", &RemoteError{Body: errMsg, Reason: "generate content"}
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text.WriteString(part.Text)
				}
			}
			return strings.TrimSpace(text.String()), nil
		}

		return "", &RemoteError{Body: "empty response", Reason: "generate content"}
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

// nextKey returns the current key, optionally rotating to the next one first.
func (s *geminiService) nextKey(rotate bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rotate {
		s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	}
	return s.apiKeys[s.currentKey]
}

package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultDeepSeekEndpoint = "https://api.deepseek.com/v1/chat/completions"

// generateTimeout is deliberately generous: a single completion over a large
// prompt can take well over a minute of model time.
const generateTimeout = 60 * time.Second

type deepSeekService struct {
	apiKey   string
	endpoint string
	model    string
	client   *http.Client
}

// NewDeepSeek creates a Service talking to a DeepSeek-compatible chat
// completions endpoint. The credential is required.
func NewDeepSeek(apiKey, endpoint, model string) (Service, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("deepseek API key is required")
	}
	if endpoint == "" {
		endpoint = defaultDeepSeekEndpoint
	}
	if model == "" {
		model = "deepseek-chat"
	}
	return &deepSeekService{
		apiKey:   apiKey,
		endpoint: endpoint,
		model:    model,
		client:   &http.Client{Timeout: generateTimeout},
	}, nil
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *deepSeekService) Complete(ctx context.Context, history []Message, prompt string) (string, error) {
	messages := make([]Message, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: prompt})

	payload, err := json.Marshal(chatRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call completion service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &RemoteError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Reason:     "request failed",
		}
	}

	var decoded chatResponse
	if err := json.Unmarshal(body, &decoded); err != nil || len(decoded.Choices) == 0 {
		// Surface the raw body so the caller can diagnose the shape mismatch.
		return "", &RemoteError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Reason:     "undecodable response",
		}
	}

	return strings.TrimSpace(decoded.Choices[0].Message.Content), nil
}

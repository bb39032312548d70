// Package ai holds the external classification adapter: a structured
// JSON client for OpenAI-compatible chat endpoints and the task
// classifier built on it. Every call is bounded by a hard timeout and
// cancelled on expiry; callers fall back locally when anything fails.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// ClientConfig configures the structured classification client.
type ClientConfig struct {
	APIKey  string
	BaseURL string // e.g. https://api.openai.com/v1
	Model   string
	Timeout time.Duration
}

// StructuredClient makes typed JSON-mode chat calls.
type StructuredClient[T any] struct {
	config ClientConfig
	http   *http.Client
}

// NewStructuredClient creates a structured client for one response type.
func NewStructuredClient[T any](config ClientConfig) *StructuredClient[T] {
	if config.Timeout <= 0 {
		config.Timeout = 3500 * time.Millisecond
	}
	return &StructuredClient[T]{
		config: config,
		http:   &http.Client{Timeout: config.Timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Stream         bool            `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GetJSONResponse sends one system+user exchange and parses the model's
// JSON reply into T. Any timeout, transport failure, non-2xx status, or
// malformed payload is returned as an error — the call either yields a
// conforming T or fails cleanly.
func (c *StructuredClient[T]) GetJSONResponse(ctx context.Context, system, user string) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	reqBody := chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    0.0,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("classification request timeout after %v: %w", c.config.Timeout, err)
		}
		return nil, fmt.Errorf("classification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("classification API error (status %d): %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var envelope chatResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse response envelope: %w", err)
	}
	if len(envelope.Choices) == 0 {
		return nil, fmt.Errorf("no choices in classification response")
	}

	content := cleanJSONContent(envelope.Choices[0].Message.Content)
	if content == "" {
		return nil, fmt.Errorf("classification response returned empty content")
	}

	var result T
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		log.Printf("[StructuredClient] malformed content: %s", content)
		return nil, fmt.Errorf("failed to parse JSON content: %w", err)
	}
	return &result, nil
}

// cleanJSONContent strips markdown code fences some models wrap around
// JSON-mode output.
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}
	return content
}

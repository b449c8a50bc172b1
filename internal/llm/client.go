// Package llm talks to an OpenAI-compatible chat completions endpoint
// and tracks request health for the status surfaces.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// #region types

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// ErrRateLimited is returned when the endpoint answers 429.
var ErrRateLimited = errors.New("rate limited")

// #endregion

// #region client

// Client is an OpenAI-compatible chat completions client.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	usage      *UsageTracker
}

// New creates a Client for the given endpoint. usage may be nil.
func New(baseURL, apiKey, model string, usage *UsageTracker) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		usage:      usage,
	}
}

// rateLimitRetries is how many times a 429 is retried, with linear
// backoff, before ErrRateLimited surfaces to the caller.
const rateLimitRetries = 2

// Complete sends one chat completion request and returns the trimmed
// assistant message. Rate-limited requests are retried with backoff.
func (c *Client) Complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error) {
	messages := []Message{}
	if system != "" {
		messages = append(messages, Message{Role: "system", Content: system})
	}
	messages = append(messages, Message{Role: "user", Content: user})

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	for attempt := 0; ; attempt++ {
		reply, err := c.complete(ctx, body)
		if errors.Is(err, ErrRateLimited) && attempt < rateLimitRetries {
			select {
			case <-time.After(time.Duration(attempt+1) * 500 * time.Millisecond):
				continue
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
		return reply, err
	}
}

func (c *Client) complete(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.track(false, false)
		return "", fmt.Errorf("chat completion: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		c.track(false, true)
		return "", ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		c.track(false, false)
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, payload)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		c.track(false, false)
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if parsed.Error != nil {
		c.track(false, false)
		return "", fmt.Errorf("api error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		c.track(false, false)
		return "", errors.New("empty completion")
	}

	c.track(true, false)
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

func (c *Client) track(success, rateLimited bool) {
	if c.usage != nil {
		c.usage.Track(success, rateLimited)
	}
}

// #endregion

// #region key-status

// KeyStatus describes the configured credential without calling out.
type KeyStatus struct {
	Valid          bool   `json:"valid"`
	Message        string `json:"message"`
	Status         string `json:"status"`
	ActionRequired string `json:"action_required,omitempty"`
}

// CheckKey validates the configured API key format.
func (c *Client) CheckKey() KeyStatus {
	switch {
	case c.apiKey == "":
		return KeyStatus{
			Valid:          false,
			Message:        "❌ No API key configured",
			Status:         "missing",
			ActionRequired: "Set OPENAI_API_KEY in the environment",
		}
	case !strings.HasPrefix(c.apiKey, "sk-"):
		return KeyStatus{
			Valid:          false,
			Message:        "❌ Invalid API key format",
			Status:         "invalid_format",
			ActionRequired: "API key must start with 'sk-'",
		}
	default:
		return KeyStatus{
			Valid:   true,
			Message: "✅ API key configured",
			Status:  "active",
		}
	}
}

// #endregion

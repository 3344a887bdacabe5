//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

// Client is the completion backend boundary. Implementations must be safe
// for concurrent use: a single client instance is shared read-only by every
// concurrent invocation in a batch.
type Client interface {
	// Complete issues exactly one chat-completion request carrying
	// instructions as the system message and query as the user turn, and
	// returns the generated text. An empty string with a nil error is a
	// valid outcome (the service answered with no content).
	Complete(ctx context.Context, instructions, query string) (string, error)
}

// Config carries the settings for the HTTP completion client.
type Config struct {
	// BaseURL is the OpenAI-compatible API root (e.g., "https://api.openai.com/v1").
	// A missing scheme or /v1 suffix is normalized away.
	BaseURL string
	// APIKey is sent as a bearer token when non-empty.
	APIKey string
	// Model is the model identifier passed with each request.
	Model string
	// Temperature is the sampling temperature (0 uses the service default).
	Temperature float32
	// MaxTokens caps the response length (0 uses the service default).
	MaxTokens int
	// RequestTimeout bounds a single HTTP request end to end.
	RequestTimeout time.Duration
}

// DefaultRequestTimeout bounds a single completion request when the
// configuration does not specify one.
const DefaultRequestTimeout = 120 * time.Second

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message      message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
}

// HTTPClient talks to an OpenAI-compatible /chat/completions endpoint.
type HTTPClient struct {
	endpoint    string
	apiKey      string
	model       string
	temperature float32
	maxTokens   int
	http        *http.Client
}

// Verify interface compliance.
var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a completion client from the given configuration.
func NewHTTPClient(cfg Config) *HTTPClient {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &HTTPClient{
		endpoint:    NormalizeBaseURL(cfg.BaseURL) + "/chat/completions",
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
	}
}

// NormalizeBaseURL trims whitespace and trailing slashes, defaults the
// scheme to http, and ensures the /v1 API suffix.
func NormalizeBaseURL(baseURL string) string {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return trimmed
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	trimmed = strings.TrimRight(trimmed, "/")
	if strings.HasSuffix(trimmed, "/v1") {
		return trimmed
	}
	return trimmed + "/v1"
}

// Complete implements Client against the configured endpoint.
func (c *HTTPClient) Complete(ctx context.Context, instructions, query string) (string, error) {
	if c.endpoint == "/chat/completions" {
		return "", fmt.Errorf("completion base URL is not configured")
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: instructions},
			{Role: "user", Content: query},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(request)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("completion service returned %s", resp.Status)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("response missing choices")
	}
	return decoded.Choices[0].Message.Content, nil
}

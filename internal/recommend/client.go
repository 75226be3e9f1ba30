package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"shelfmate/backend/internal/config"
)

// minPlausibleLength is the shortest trimmed body that could possibly carry
// a recommendation array. Anything shorter is treated as unusable.
const minPlausibleLength = 10

// defaultClientTimeout bounds the remote call. The pipeline deliberately
// enforces no tighter deadline; a timeout routes to fallback like any other
// transport failure.
const defaultClientTimeout = 30 * time.Second

// CompletionClient is the remote chat-completion dependency of the
// orchestrator.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Client calls an OpenAI-style chat-completion endpoint. Configuration is
// explicit; there is no shared global instance.
type Client struct {
	provider   config.AIProvider
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the given provider. httpClient may be nil,
// in which case a client with the default timeout is used.
func NewClient(provider config.AIProvider, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultClientTimeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{provider: provider, httpClient: httpClient, logger: logger}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a single request and returns the raw response text. There
// is no retry: a failed call is handed to the fallback generator instead of
// doubling latency and cost on a paid endpoint. Every failure is reported as
// a transport RecoverableError except context cancellation, which propagates
// as-is so abandoned requests are discarded.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.provider.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: c.provider.Temperature,
		MaxTokens:   c.provider.MaxTokens,
		TopP:        c.provider.TopP,
	})
	if err != nil {
		return "", transportFailure("marshal request", err)
	}

	endpoint := strings.TrimRight(c.provider.Endpoint, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", transportFailure("build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(c.provider.APIKey))
	req.Header.Set("Content-Type", "application/json")
	// App identification headers, informational only.
	req.Header.Set("HTTP-Referer", c.provider.AppReferer)
	req.Header.Set("X-Title", c.provider.AppTitle)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", transportFailure("request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportFailure("read response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("completion endpoint returned error status",
			zap.Int("status", resp.StatusCode))
		return "", transportFailure(fmt.Sprintf("status %d", resp.StatusCode), nil)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", transportFailure("malformed response body", err)
	}
	if len(parsed.Choices) == 0 {
		return "", transportFailure("no choices in response", nil)
	}

	content := parsed.Choices[0].Message.Content
	if len(strings.TrimSpace(content)) < minPlausibleLength {
		return "", transportFailure("response too short to be usable", nil)
	}
	return content, nil
}

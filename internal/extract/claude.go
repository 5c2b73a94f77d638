package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/tcardoso/minutegen/internal/minutes"
)

const defaultAPIURL = "https://api.anthropic.com/v1/messages"

// Client calls the Anthropic Messages API to derive a meeting-minutes draft
// from a transcript.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	maxRetries int
	httpClient *http.Client

	// Stats tracks extraction call latencies for the stats endpoint.
	Stats *CallStats
}

func NewClient(apiKey, model string, timeout time.Duration, maxRetries int) *Client {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultAPIURL,
		maxRetries: maxRetries,
		httpClient: &http.Client{Timeout: timeout},
		Stats:      NewCallStats(time.Hour),
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ExtractDraft sends the transcript to the model and validates the reply
// against the draft shape. An empty transcript fails fast before any network
// call. Transient service failures are retried within this one call; every
// other failure collapses into ErrExtractionFailed with no partial draft.
func (c *Client) ExtractDraft(ctx context.Context, transcript string) (minutes.Draft, error) {
	if strings.TrimSpace(transcript) == "" {
		return minutes.Draft{}, ErrEmptyTranscript
	}

	prompt := BuildPrompt(transcript)

	start := time.Now()
	text, err := c.complete(ctx, prompt)
	c.Stats.Record(time.Since(start).Milliseconds())
	if err != nil {
		return minutes.Draft{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	draft, err := minutes.Decode([]byte(stripCodeBlock(text)))
	if err != nil {
		return minutes.Draft{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	return draft, nil
}

// complete performs the request round-trip, retrying transient failures.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		text, err := c.completeOnce(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return "", err
		}
		select {
		case <-time.After(backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", lastErr
}

func (c *Client) completeOnce(ctx context.Context, prompt string) (string, error) {
	reqBody := anthropicRequest{
		Model:     c.model,
		MaxTokens: 4096,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("claude api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", &RetryableError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("claude api status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("claude error: %s: %s", apiResp.Error.Type, apiResp.Error.Message)
	}
	if len(apiResp.Content) == 0 {
		return "", fmt.Errorf("empty response from claude")
	}
	return apiResp.Content[0].Text, nil
}

var codeBlockRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Package gemini is a thin client for an optional Gemini-style text
// summarization endpoint. It never returns errors to callers: any failure is
// reported as an absent summary, and the caller falls back to the local
// extractive summarizer.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Config holds the credentials and limits for the external call. The exact
// request/response shape varies between deployments, so the response decoder
// tries several common shapes (see extractSummary).
type Config struct {
	APIKey    string
	Endpoint  string
	Timeout   time.Duration
	MaxTokens int
}

// DefaultConfig returns a config with no credentials, a 30s timeout, and a
// 300-token generation cap.
func DefaultConfig() Config {
	return Config{
		Timeout:   30 * time.Second,
		MaxTokens: 300,
	}
}

// LoadConfig reads credentials from the GEMINI_API_KEY and GEMINI_API_URL
// environment variables over the defaults.
func LoadConfig() Config {
	cfg := DefaultConfig()
	cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	cfg.Endpoint = os.Getenv("GEMINI_API_URL")
	return cfg
}

// Configured reports whether both the key and the endpoint are present.
// An unconfigured client never attempts a request.
func (c Config) Configured() bool {
	return c.APIKey != "" && c.Endpoint != ""
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultConfig().MaxTokens
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{},
		logger: logger,
	}
}

type generateRequest struct {
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

// Summarize issues a single synchronous generation request. The second
// return value is false whenever no summary was produced, for any reason:
// missing credentials, transport error, non-success status, or a response
// no candidate shape matched.
func (c *Client) Summarize(ctx context.Context, prompt string) (string, bool) {
	if !c.cfg.Configured() {
		return "", false
	}

	body, err := json.Marshal(generateRequest{
		Prompt:    prompt,
		MaxTokens: c.cfg.MaxTokens,
	})
	if err != nil {
		c.logger.Warn("Gemini request marshal failed", "error", err)
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		c.logger.Warn("Gemini request build failed", "error", err)
		return "", false
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("Gemini API call failed", "error", err)
		return "", false
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("Gemini response read failed", "error", err)
		return "", false
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Gemini API returned non-success status",
			"status", resp.StatusCode, "body_bytes", len(respBody))
		return "", false
	}

	summary, ok := extractSummary(respBody)
	if !ok || summary == "" {
		c.logger.Warn("Gemini response had no recognizable summary")
		return "", false
	}
	return summary, true
}

// extractSummary decodes the response body, attempting candidate shapes in
// order: a direct "summary" field, an OpenAI-style choices[0] structure
// (text, then message.content), an "output" string field, and finally the
// raw body text. Key presence drives the attempt order, so decoding works
// over a generic map rather than a fixed struct. A body that is not valid
// JSON is a malformed response: absent, never an error.
func extractSummary(body []byte) (string, bool) {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return "", false
	}

	obj, isObject := data.(map[string]any)
	if !isObject {
		return string(body), true
	}

	// A non-string summary value (a number, say) is rendered as text rather
	// than falling through to the other shapes.
	if v, present := obj["summary"]; present && v != nil {
		if s, isString := v.(string); isString {
			return s, true
		}
		return fmt.Sprintf("%v", v), true
	}

	if choices, present := obj["choices"].([]any); present && len(choices) > 0 {
		if first, isObject := choices[0].(map[string]any); isObject {
			if s, isString := first["text"].(string); isString && s != "" {
				return s, true
			}
			if msg, isObject := first["message"].(map[string]any); isObject {
				if s, isString := msg["content"].(string); isString {
					return s, true
				}
			}
		}
		return "", false
	}

	if s, isString := obj["output"].(string); isString {
		return s, true
	}

	return string(body), true
}

// BuildPrompt formats the summarization prompt sent for a page.
func BuildPrompt(title, metaDescription, preview string) string {
	return fmt.Sprintf(
		"Summarize the following webpage content in 2-3 short sentences. Keep it factual and concise.\n\n"+
			"Title: %s\n\nMeta: %s\n\nContent preview: %s\n\nSummary:",
		title, metaDescription, preview)
}

// Package genai wraps the Gemini generateContent endpoint. It is the single
// transport used for multimodal transcription, translation, and meta-tag
// generation; callers own retry policy and latency measurement, so Generate
// performs exactly one round trip.
package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/kavyahq/storyeval/errors"
	"github.com/kavyahq/storyeval/httpclient"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 120 * time.Second
)

// Config holds configuration for the generation client. The API key is
// injected here at construction time; nothing reads it from package state.
type Config struct {
	// APIKey authenticates every request via the "key" query parameter.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Model selects the generation model.
	Model string `yaml:"model" mapstructure:"model"`
	// Timeout bounds each HTTP round trip.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// Generator is the interface consumed by translation and meta-tag code.
type Generator interface {
	// Generate performs one generation round trip and returns the
	// concatenated text of the first candidate.
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// Client calls the generateContent REST endpoint.
type Client struct {
	http  *httpclient.Client
	model string
}

// New creates a generation client from config.
func New(cfg Config) (*Client, error) {
	cfg.applyDefaults()
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("genai: api key is required")
	}

	hc, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.APIKeyAuthQuery(cfg.APIKey, "key"),
	})
	if err != nil {
		return nil, fmt.Errorf("genai: create http client: %w", err)
	}

	return &Client{http: hc, model: cfg.Model}, nil
}

// Name returns the provider name.
func (c *Client) Name() string { return "gemini" }

// IsAvailable reports whether the client is constructed and configured.
// The Gemini REST API has no cheap health endpoint worth burning quota on.
func (c *Client) IsAvailable(_ context.Context) bool { return c.http != nil }

// Generate performs one generateContent round trip.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	body := generateContentRequest{
		Contents: []Content{{Parts: req.Parts}},
	}
	if req.Temperature != 0 || req.MaxOutputTokens != 0 {
		body.GenerationConfig = &GenerationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxOutputTokens,
		}
	}

	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/v1beta/models/%s:generateContent", c.model),
		Body:   body,
	})
	if err != nil {
		return "", err
	}

	return ExtractText(resp.Body)
}

// ExtractText pulls the first candidate's concatenated text out of a
// generateContent response body.
func ExtractText(body []byte) (string, error) {
	var parsed generateContentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", apperrors.Parse(fmt.Sprintf("gemini: decode response: %v", err)).WithCause(err)
	}
	if len(parsed.Candidates) == 0 {
		return "", apperrors.Parse("gemini: response has no candidates")
	}

	var sb strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}

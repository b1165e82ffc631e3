// Package sarvam implements speech-to-text against the Sarvam AI
// speech-to-text endpoint. Audio is uploaded as multipart form data and
// billed per second of audio duration.
package sarvam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/kavyahq/storyeval/audio"
	apperrors "github.com/kavyahq/storyeval/errors"
	"github.com/kavyahq/storyeval/httpclient"
	"github.com/kavyahq/storyeval/pricing"
	"github.com/kavyahq/storyeval/stt"
	"github.com/kavyahq/storyeval/util"
)

const (
	// ProviderName is the registry key for this provider.
	ProviderName = "sarvam"

	defaultBaseURL = "https://api.sarvam.ai"
	defaultModel   = "saarika:v2.5"
	transcribePath = "/speech-to-text"

	// authHeader is where Sarvam expects the API key.
	authHeader = "api-subscription-key"
)

// Config configures the Sarvam provider.
type Config struct {
	// APIKey is the Sarvam subscription key.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Model selects the transcription model.
	Model string `yaml:"model" mapstructure:"model"`
	// Timeout bounds each HTTP round trip.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// PricePerSecond is the USD rate applied to audio duration.
	PricePerSecond float64 `yaml:"price_per_second" mapstructure:"price_per_second"`
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.PricePerSecond == 0 {
		c.PricePerSecond = pricing.DefaultSarvamPerSecond
	}
}

// transcribeResponse is the wire shape of a successful transcription.
type transcribeResponse struct {
	Transcript   string `json:"transcript"`
	LanguageCode string `json:"language_code"`
}

// Provider calls the Sarvam speech-to-text API.
type Provider struct {
	http           *httpclient.Client
	model          string
	pricePerSecond float64
	prober         audio.Prober
}

var _ stt.Provider = (*Provider)(nil)

// New creates a Sarvam provider from config. prober may be nil, in which
// case durations always fall back to the size estimate.
func New(cfg Config, prober audio.Prober) (*Provider, error) {
	cfg.applyDefaults()
	if cfg.APIKey == "" {
		return nil, apperrors.Config("sarvam api key is required")
	}

	hc, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.APIKeyAuthHeader(cfg.APIKey, authHeader),
	})
	if err != nil {
		return nil, fmt.Errorf("sarvam: create http client: %w", err)
	}

	return &Provider{
		http:           hc,
		model:          cfg.Model,
		pricePerSecond: cfg.PricePerSecond,
		prober:         prober,
	}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether the provider is constructed and configured.
func (p *Provider) IsAvailable(_ context.Context) bool { return p.http != nil }

// Transcribe uploads the audio file and returns its transcription with
// duration-based cost. Latency covers the upload round trip only.
func (p *Provider) Transcribe(ctx context.Context, req stt.Request) (*stt.Result, error) {
	data, err := os.ReadFile(req.AudioPath)
	if err != nil {
		return nil, apperrors.LocalIO(req.AudioPath, err)
	}

	model := util.Coalesce(req.Model, p.model)

	fields := map[string]string{
		"model":           model,
		"with_timestamps": "false",
	}
	if req.Language != "" && req.Language != "auto" {
		fields["language_code"] = req.Language
	}

	body := &httpclient.MultipartBody{
		Fields: fields,
		Files: []httpclient.FileField{{
			FieldName:   "file",
			FileName:    filepath.Base(req.AudioPath),
			ContentType: audio.DetectMIME(req.AudioPath),
			Data:        data,
		}},
	}

	start := time.Now()
	resp, err := p.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   transcribePath,
		Body:   body,
	})
	latency := time.Since(start)
	if err != nil {
		return nil, apperrors.FromHTTP(ProviderName, err)
	}

	var parsed transcribeResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return nil, apperrors.Parse(fmt.Sprintf("sarvam: decode response: %v", err)).WithCause(err)
	}

	duration := audio.DurationOrEstimate(ctx, p.prober, req.AudioPath)

	return &stt.Result{
		Text:            parsed.Transcript,
		Language:        parsed.LanguageCode,
		DurationSeconds: duration,
		Cost:            pricing.DurationCost(duration, p.pricePerSecond),
		Latency:         latency,
	}, nil
}

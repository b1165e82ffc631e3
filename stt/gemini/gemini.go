// Package gemini implements speech-to-text by sending inline audio to the
// Gemini generateContent endpoint with a transcription prompt. The model
// transcribes and translates in one pass, so the returned text is always
// English.
package gemini

import (
	"context"
	"encoding/base64"
	"os"
	"time"

	"github.com/kavyahq/storyeval/audio"
	apperrors "github.com/kavyahq/storyeval/errors"
	"github.com/kavyahq/storyeval/genai"
	"github.com/kavyahq/storyeval/logger"
	"github.com/kavyahq/storyeval/pricing"
	"github.com/kavyahq/storyeval/resilience"
	"github.com/kavyahq/storyeval/stt"
)

const (
	// ProviderName is the registry key for this provider.
	ProviderName = "gemini"

	// transcribePrompt instructs the model to produce a bare English
	// transcription with no surrounding commentary.
	transcribePrompt = "Please transcribe and translate the following audio into English. " +
		"Return only the final English transcription, without any commentary or extra text."

	// unparseableText lands in the transcription column when the model
	// responds but nothing usable comes back; the file is not failed.
	unparseableText = "ERROR: Could not parse Gemini response"

	transcribeTemperature = 0.2
	transcribeMaxTokens   = 4096

	defaultMaxAttempts    = 3
	defaultInitialBackoff = 30 * time.Second
)

// Config configures the Gemini STT provider.
type Config struct {
	// Prices are the per-token USD rates. Zero value uses defaults.
	Prices pricing.TokenPrices `yaml:"prices" mapstructure:"prices"`
	// MaxAttempts bounds rate-limit retries, including the first attempt.
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts"`
	// InitialBackoff is the base delay for linear backoff between
	// rate-limited attempts: the n-th retry waits n times this value.
	InitialBackoff time.Duration `yaml:"initial_backoff" mapstructure:"initial_backoff"`
}

func (c *Config) applyDefaults() {
	if c.Prices == (pricing.TokenPrices{}) {
		c.Prices = pricing.DefaultTokenPrices()
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.InitialBackoff == 0 {
		c.InitialBackoff = defaultInitialBackoff
	}
}

// Provider transcribes audio through a generation client.
type Provider struct {
	gen    genai.Generator
	prober audio.Prober
	prices pricing.TokenPrices
	retry  resilience.RetryConfig
	log    *logger.Logger
}

var _ stt.Provider = (*Provider)(nil)

// New creates a Gemini STT provider on top of an existing generation
// client. prober may be nil.
func New(cfg Config, gen genai.Generator, prober audio.Prober, log *logger.Logger) (*Provider, error) {
	if gen == nil {
		return nil, apperrors.Config("gemini stt requires a generation client")
	}
	cfg.applyDefaults()
	if log == nil {
		log = logger.NewDefault()
	}
	log = log.WithComponent("stt.gemini")

	retry := resilience.RetryConfig{
		MaxAttempts:    cfg.MaxAttempts,
		InitialBackoff: cfg.InitialBackoff,
		Strategy:       resilience.BackoffLinear,
		RetryIf:        apperrors.IsRateLimited,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			log.Warn("rate limited, backing off", map[string]interface{}{
				"attempt": attempt,
				"backoff": backoff.String(),
			})
		},
	}

	return &Provider{
		gen:    gen,
		prober: prober,
		prices: cfg.Prices,
		retry:  retry,
		log:    log,
	}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether the provider has a generation client.
func (p *Provider) IsAvailable(_ context.Context) bool {
	return p.gen != nil
}

// attemptOutcome carries one attempt's text and round-trip time through
// the retry loop.
type attemptOutcome struct {
	text    string
	latency time.Duration
}

// Transcribe sends the audio inline with the transcription prompt.
// Rate-limited calls are retried with linear backoff; the reported
// latency covers only the successful round trip, never backoff waits.
func (p *Provider) Transcribe(ctx context.Context, req stt.Request) (*stt.Result, error) {
	data, err := os.ReadFile(req.AudioPath)
	if err != nil {
		return nil, apperrors.LocalIO(req.AudioPath, err)
	}

	genReq := genai.GenerateRequest{
		Parts: []genai.Part{
			genai.TextPart(transcribePrompt),
			genai.AudioPart(audio.DetectMIME(req.AudioPath), base64.StdEncoding.EncodeToString(data)),
		},
		Temperature:     transcribeTemperature,
		MaxOutputTokens: transcribeMaxTokens,
	}

	outcome, err := resilience.Retry(ctx, p.retry, func() (attemptOutcome, error) {
		start := time.Now()
		text, genErr := p.gen.Generate(ctx, genReq)
		latency := time.Since(start)
		if genErr != nil {
			appErr := apperrors.FromHTTP(ProviderName, genErr)
			// The round trip completed but the response was unusable:
			// the call was still billed, so degrade instead of failing.
			if apperrors.IsParse(appErr) {
				return attemptOutcome{latency: latency}, nil
			}
			return attemptOutcome{}, appErr
		}
		return attemptOutcome{text: text, latency: latency}, nil
	})
	if err != nil {
		return nil, err
	}

	text := outcome.text
	if text == "" {
		text = unparseableText
		p.log.Warn("unusable transcription response", map[string]interface{}{
			"audio_path": req.AudioPath,
		})
	}

	duration := audio.DurationOrEstimate(ctx, p.prober, req.AudioPath)

	return &stt.Result{
		Text:            text,
		Language:        "en",
		DurationSeconds: duration,
		Cost:            pricing.GenerationCost(transcribePrompt, outcome.text, duration, p.prices),
		Latency:         outcome.latency,
	}, nil
}

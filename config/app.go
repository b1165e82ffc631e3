package config

import (
	"time"

	"github.com/kavyahq/storyeval/logger"
	"github.com/kavyahq/storyeval/pricing"
	"github.com/kavyahq/storyeval/validation"
)

// AudioConfig configures the audio evaluation pipeline.
type AudioConfig struct {
	// SarvamAPIKey authenticates against the Sarvam speech-to-text API.
	SarvamAPIKey string `yaml:"sarvam_api_key" mapstructure:"sarvam_api_key" validate:"required"`
	// GeminiAPIKey authenticates transcription and translation calls.
	GeminiAPIKey string `yaml:"gemini_api_key" mapstructure:"gemini_api_key" validate:"required"`

	// SarvamModel selects the Sarvam transcription model.
	SarvamModel string `yaml:"sarvam_model" mapstructure:"sarvam_model"`
	// GeminiModel selects the Gemini generation model.
	GeminiModel string `yaml:"gemini_model" mapstructure:"gemini_model"`

	// SarvamPricePerSecond is the per-second USD transcription rate.
	SarvamPricePerSecond float64 `yaml:"sarvam_price_per_second" mapstructure:"sarvam_price_per_second" validate:"gte=0"`

	// RetryMaxAttempts bounds rate-limit retries (including the first attempt).
	RetryMaxAttempts int `yaml:"retry_max_attempts" mapstructure:"retry_max_attempts" validate:"gte=1"`
	// RetryInitialBackoff is the linear backoff base between retries.
	RetryInitialBackoff time.Duration `yaml:"retry_initial_backoff" mapstructure:"retry_initial_backoff"`

	// FFProbePath overrides the ffprobe binary used for duration probing.
	FFProbePath string `yaml:"ffprobe_path" mapstructure:"ffprobe_path"`

	// Agreement enables cross-provider wer/cer report columns.
	Agreement bool `yaml:"agreement" mapstructure:"agreement"`

	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults fills zero values with working defaults.
func (c *AudioConfig) ApplyDefaults() {
	if c.SarvamPricePerSecond == 0 {
		c.SarvamPricePerSecond = pricing.DefaultSarvamPerSecond
	}
	if c.RetryMaxAttempts == 0 {
		c.RetryMaxAttempts = 3
	}
	if c.RetryInitialBackoff == 0 {
		c.RetryInitialBackoff = 30 * time.Second
	}
	c.Logging.ApplyDefaults()
}

// Validate checks the configuration.
func (c *AudioConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	return c.Logging.Validate()
}

// StoryConfig configures the meta-tag pipeline.
type StoryConfig struct {
	// GeminiAPIKey authenticates the generation calls.
	GeminiAPIKey string `yaml:"gemini_api_key" mapstructure:"gemini_api_key" validate:"required"`
	// GeminiModel selects the generation model.
	GeminiModel string `yaml:"gemini_model" mapstructure:"gemini_model"`

	// ChainOfThought asks the model for an analysis before the JSON.
	ChainOfThought bool `yaml:"chain_of_thought" mapstructure:"chain_of_thought"`
	// Limit caps how many stories are processed per run. Zero uses the
	// pipeline default.
	Limit int `yaml:"limit" mapstructure:"limit" validate:"gte=0"`
	// Titles, when non-empty, whitelists stories by title.
	Titles []string `yaml:"titles" mapstructure:"titles"`

	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults fills zero values with working defaults.
func (c *StoryConfig) ApplyDefaults() {
	c.Logging.ApplyDefaults()
}

// Validate checks the configuration.
func (c *StoryConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	return c.Logging.Validate()
}

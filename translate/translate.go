// Package translate converts non-English transcriptions to English
// through the generation client so they can be compared against the
// English-only Gemini transcription.
package translate

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/kavyahq/storyeval/errors"
	"github.com/kavyahq/storyeval/genai"
	"github.com/kavyahq/storyeval/pricing"
)

const (
	translateTemperature = 0.1
	translateMaxTokens   = 4096

	promptFormat = "Translate the following text from %s to English. " +
		"Provide only the translation without any additional commentary:\n\n%s"
)

// englishCodes are the language codes that skip translation entirely.
var englishCodes = map[string]bool{
	"en":    true,
	"en-IN": true,
}

// IsEnglish reports whether a language code needs no translation.
// Matching is exact; regional variants other than en-IN are translated.
func IsEnglish(lang string) bool {
	return englishCodes[lang]
}

// Result holds a translation and its accounting data.
type Result struct {
	// Text is the English translation. Empty when the model returned
	// nothing usable; callers fall back to the original text.
	Text string
	// Cost is the estimated USD cost of the call.
	Cost float64
	// Latency is the wall-clock time of the round trip.
	Latency time.Duration
}

// Translator turns text in a named language into English.
type Translator struct {
	gen    genai.Generator
	prices pricing.TokenPrices
}

// New creates a Translator on top of an existing generation client.
func New(gen genai.Generator, prices pricing.TokenPrices) (*Translator, error) {
	if gen == nil {
		return nil, apperrors.Config("translator requires a generation client")
	}
	if prices == (pricing.TokenPrices{}) {
		prices = pricing.DefaultTokenPrices()
	}
	return &Translator{gen: gen, prices: prices}, nil
}

// Translate converts text from sourceLang to English. Cost is charged
// even when the model returns an empty translation, since the call was
// still billed. A failed call never returns an error: it yields an
// empty-text Result carrying the attempt's latency so callers fall back
// to the original transcript and keep processing the batch.
func (t *Translator) Translate(ctx context.Context, text, sourceLang string) *Result {
	prompt := fmt.Sprintf(promptFormat, sourceLang, text)

	start := time.Now()
	out, err := t.gen.Generate(ctx, genai.GenerateRequest{
		Parts:           []genai.Part{genai.TextPart(prompt)},
		Temperature:     translateTemperature,
		MaxOutputTokens: translateMaxTokens,
	})
	latency := time.Since(start)
	if err != nil {
		return &Result{Latency: latency}
	}

	return &Result{
		Text:    out,
		Cost:    pricing.GenerationCost(prompt, out, 0, t.prices),
		Latency: latency,
	}
}

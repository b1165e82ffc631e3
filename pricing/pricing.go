// Package pricing converts heterogeneous billing units (per-second audio
// pricing, per-token text and audio pricing) into USD and tracks latency
// separately from cost. The formulas are intentionally approximate; the
// contract is reproducibility, not calibration against vendor invoices.
package pricing

// Default prices in USD.
const (
	// DefaultSarvamPerSecond is the saarika:v2.5 speech-to-text rate.
	DefaultSarvamPerSecond = 0.00075
	// DefaultGeminiInputTextPerToken is the text-input rate.
	DefaultGeminiInputTextPerToken = 0.3 / 1e6
	// DefaultGeminiInputAudioPerToken is the audio-input rate.
	DefaultGeminiInputAudioPerToken = 1.0 / 1e6
	// DefaultGeminiOutputTextPerToken is the text-output rate.
	DefaultGeminiOutputTextPerToken = 2.5 / 1e6
)

const (
	// charsPerToken approximates tokenization when no tokenizer is available.
	charsPerToken = 4.0
	// audioTokensPerSecond approximates audio-input token counts for
	// multimodal generation calls.
	audioTokensPerSecond = 50.0
)

// TokenPrices holds per-token USD rates for a generation endpoint.
type TokenPrices struct {
	InputText  float64 `yaml:"input_text" mapstructure:"input_text"`
	InputAudio float64 `yaml:"input_audio" mapstructure:"input_audio"`
	OutputText float64 `yaml:"output_text" mapstructure:"output_text"`
}

// DefaultTokenPrices returns the Gemini generateContent rates.
func DefaultTokenPrices() TokenPrices {
	return TokenPrices{
		InputText:  DefaultGeminiInputTextPerToken,
		InputAudio: DefaultGeminiInputAudioPerToken,
		OutputText: DefaultGeminiOutputTextPerToken,
	}
}

// EstimateTokens approximates the token count of a text blob as
// character count divided by four.
func EstimateTokens(text string) float64 {
	if text == "" {
		return 0
	}
	return float64(len(text)) / charsPerToken
}

// EstimateAudioTokens approximates the audio-input token count of a
// multimodal call from the audio duration.
func EstimateAudioTokens(durationSeconds float64) float64 {
	return durationSeconds * audioTokensPerSecond
}

// DurationCost prices a duration-billed call.
func DurationCost(durationSeconds, pricePerSecond float64) float64 {
	return durationSeconds * pricePerSecond
}

// GenerationCost prices a token-billed generation call. audioSeconds is zero
// for text-only calls.
func GenerationCost(prompt, output string, audioSeconds float64, p TokenPrices) float64 {
	cost := EstimateTokens(prompt)*p.InputText + EstimateTokens(output)*p.OutputText
	if audioSeconds > 0 {
		cost += EstimateAudioTokens(audioSeconds) * p.InputAudio
	}
	return cost
}

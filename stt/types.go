package stt

import "time"

// Request holds parameters for a transcription call.
type Request struct {
	// AudioPath is the path to the audio file to transcribe.
	AudioPath string `json:"audio_path"`
	// Language is the expected language of the audio. "auto" or empty
	// lets the provider detect it.
	Language string `json:"language,omitempty"`
	// Model is the transcription model to use.
	Model string `json:"model,omitempty"`
}

// Result holds the outcome of a transcription call together with the
// accounting data the batch driver accumulates.
type Result struct {
	// Text is the full transcription text.
	Text string `json:"text"`
	// Language is the detected or specified language code.
	Language string `json:"language,omitempty"`
	// DurationSeconds is the audio duration used for pricing.
	DurationSeconds float64 `json:"duration_seconds"`
	// Cost is the estimated USD cost of this call.
	Cost float64 `json:"cost"`
	// Latency is the wall-clock time of the successful network round
	// trip. Time spent in retry backoff is excluded.
	Latency time.Duration `json:"latency"`
}

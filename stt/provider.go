// Package stt defines the speech-to-text provider abstraction used by
// the audio evaluation pipeline. Concrete providers live in
// subpackages and register through a provider.Registry.
package stt

import (
	"context"

	"github.com/kavyahq/storyeval/provider"
)

// Provider is implemented by speech-to-text backends.
type Provider interface {
	provider.Provider

	// Transcribe converts the audio file named in req into text,
	// reporting cost and latency alongside the transcription.
	Transcribe(ctx context.Context, req Request) (*Result, error)
}

// NewRegistry creates an empty registry for STT providers.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}

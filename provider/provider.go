// Package provider defines the base interface and registry shared by the
// speech-to-text and text-generation backends. Each remote service is a
// named provider constructed from explicit configuration, never from
// package-level state.
package provider

import "context"

// Provider is the base interface all remote backends must implement.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

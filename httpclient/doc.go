// Package httpclient provides the HTTP client used by all remote provider
// calls: speech-to-text uploads, multimodal generation, and translation.
//
// It supports API-key authentication (header or query parameter), multipart
// file uploads, JSON bodies, typed status-code classification, and optional
// bounded retry via the resilience package. Latency-sensitive callers that
// must measure a single round trip (the cost accountant's contract excludes
// retry backoff from latency) should disable client-level retry and time
// individual Do calls instead.
package httpclient

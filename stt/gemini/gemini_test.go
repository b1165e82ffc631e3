package gemini

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/kavyahq/storyeval/errors"
	"github.com/kavyahq/storyeval/genai"
	"github.com/kavyahq/storyeval/stt"
)

// stubGenerator scripts a sequence of generation outcomes.
type stubGenerator struct {
	calls    int
	requests []genai.GenerateRequest
	results  []string
	errs     []error
	delay    time.Duration
}

func (s *stubGenerator) Generate(_ context.Context, req genai.GenerateRequest) (string, error) {
	i := s.calls
	s.calls++
	s.requests = append(s.requests, req)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.results) {
		return s.results[i], nil
	}
	return "", nil
}

type fixedProber struct{ seconds float64 }

func (p fixedProber) Duration(_ context.Context, _ string) (float64, error) {
	return p.seconds, nil
}

func writeTempAudio(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("fake-audio-bytes"), 0o644); err != nil {
		t.Fatalf("write temp audio: %v", err)
	}
	return path
}

func TestTranscribe_BuildsMultimodalRequest(t *testing.T) {
	audioPath := writeTempAudio(t, "story.mp3")
	gen := &stubGenerator{results: []string{"Once upon a time."}}

	p, err := New(Config{}, gen, fixedProber{seconds: 60}, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	result, err := p.Transcribe(context.Background(), stt.Request{AudioPath: audioPath})
	if err != nil {
		t.Fatalf("Transcribe() error: %v", err)
	}

	if len(gen.requests) != 1 {
		t.Fatalf("generator called %d times, want 1", len(gen.requests))
	}
	req := gen.requests[0]
	if len(req.Parts) != 2 {
		t.Fatalf("request has %d parts, want 2", len(req.Parts))
	}
	if !strings.Contains(req.Parts[0].Text, "transcribe and translate") {
		t.Errorf("prompt = %q, want transcription instruction", req.Parts[0].Text)
	}
	if req.Parts[1].InlineData == nil {
		t.Fatal("second part should carry inline audio")
	}
	if req.Parts[1].InlineData.MIMEType != "audio/mpeg" {
		t.Errorf("MIME = %q, want audio/mpeg", req.Parts[1].InlineData.MIMEType)
	}
	if req.Temperature != 0.2 {
		t.Errorf("Temperature = %f, want 0.2", req.Temperature)
	}
	if req.MaxOutputTokens != 4096 {
		t.Errorf("MaxOutputTokens = %d, want 4096", req.MaxOutputTokens)
	}

	if result.Text != "Once upon a time." {
		t.Errorf("Text = %q", result.Text)
	}
	if result.Language != "en" {
		t.Errorf("Language = %q, want en", result.Language)
	}
	if result.DurationSeconds != 60 {
		t.Errorf("DurationSeconds = %f, want 60", result.DurationSeconds)
	}
	// 60s of audio at 50 tokens/s dominates the cost.
	if result.Cost <= 60*50*1.0/1e6 {
		t.Errorf("Cost = %f, should include audio input tokens", result.Cost)
	}
}

func TestTranscribe_RetriesRateLimitOnly(t *testing.T) {
	audioPath := writeTempAudio(t, "clip.wav")
	gen := &stubGenerator{
		errs:    []error{apperrors.RateLimited("gemini"), apperrors.RateLimited("gemini")},
		results: []string{"", "", "recovered text"},
	}

	p, err := New(Config{MaxAttempts: 3, InitialBackoff: time.Millisecond}, gen, nil, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	result, err := p.Transcribe(context.Background(), stt.Request{AudioPath: audioPath})
	if err != nil {
		t.Fatalf("Transcribe() error: %v", err)
	}
	if gen.calls != 3 {
		t.Errorf("generator called %d times, want 3", gen.calls)
	}
	if result.Text != "recovered text" {
		t.Errorf("Text = %q, want recovered text", result.Text)
	}
}

func TestTranscribe_RateLimitExhaustsAttempts(t *testing.T) {
	audioPath := writeTempAudio(t, "clip.wav")
	gen := &stubGenerator{
		errs: []error{
			apperrors.RateLimited("gemini"),
			apperrors.RateLimited("gemini"),
			apperrors.RateLimited("gemini"),
		},
	}

	p, err := New(Config{MaxAttempts: 3, InitialBackoff: time.Millisecond}, gen, nil, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	_, err = p.Transcribe(context.Background(), stt.Request{AudioPath: audioPath})
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if !apperrors.IsRateLimited(err) {
		t.Errorf("error = %v, want RATE_LIMITED", err)
	}
	if gen.calls != 3 {
		t.Errorf("generator called %d times, want 3", gen.calls)
	}
}

func TestTranscribe_RemoteErrorNotRetried(t *testing.T) {
	audioPath := writeTempAudio(t, "clip.wav")
	gen := &stubGenerator{
		errs: []error{apperrors.Remote("gemini", 500, "boom")},
	}

	p, err := New(Config{MaxAttempts: 3, InitialBackoff: time.Millisecond}, gen, nil, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	_, err = p.Transcribe(context.Background(), stt.Request{AudioPath: audioPath})
	if err == nil {
		t.Fatal("expected remote error")
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1 (no retry on remote error)", gen.calls)
	}
}

func TestTranscribe_LatencyExcludesBackoff(t *testing.T) {
	audioPath := writeTempAudio(t, "clip.wav")
	gen := &stubGenerator{
		errs:    []error{apperrors.RateLimited("gemini")},
		results: []string{"", "text"},
		delay:   5 * time.Millisecond,
	}

	// A long backoff that would dwarf the attempt latency if included.
	p, err := New(Config{MaxAttempts: 2, InitialBackoff: 200 * time.Millisecond}, gen, nil, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	result, err := p.Transcribe(context.Background(), stt.Request{AudioPath: audioPath})
	if err != nil {
		t.Fatalf("Transcribe() error: %v", err)
	}
	if result.Latency >= 200*time.Millisecond {
		t.Errorf("Latency = %v, should exclude the 200ms backoff", result.Latency)
	}
	if result.Latency < 5*time.Millisecond {
		t.Errorf("Latency = %v, should cover the successful attempt", result.Latency)
	}
}

func TestTranscribe_EmptyTextDegradesToErrorText(t *testing.T) {
	audioPath := writeTempAudio(t, "clip.wav")
	gen := &stubGenerator{results: []string{""}}

	p, err := New(Config{}, gen, nil, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	result, err := p.Transcribe(context.Background(), stt.Request{AudioPath: audioPath})
	if err != nil {
		t.Fatalf("Transcribe() error: %v, empty transcription must not fail the file", err)
	}
	if result.Text != "ERROR: Could not parse Gemini response" {
		t.Errorf("Text = %q, want the error sentinel", result.Text)
	}
	// The round trip was still billed.
	if result.Cost <= 0 {
		t.Errorf("Cost = %f, want positive for the billed call", result.Cost)
	}
}

func TestTranscribe_UnparseableResponseDegrades(t *testing.T) {
	audioPath := writeTempAudio(t, "clip.wav")
	gen := &stubGenerator{
		errs:  []error{apperrors.Parse("gemini: response has no candidates")},
		delay: 2 * time.Millisecond,
	}

	p, err := New(Config{MaxAttempts: 3, InitialBackoff: time.Millisecond}, gen, nil, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	result, err := p.Transcribe(context.Background(), stt.Request{AudioPath: audioPath})
	if err != nil {
		t.Fatalf("Transcribe() error: %v, parse failures must degrade", err)
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1 (no retry on parse failure)", gen.calls)
	}
	if result.Text != "ERROR: Could not parse Gemini response" {
		t.Errorf("Text = %q, want the error sentinel", result.Text)
	}
	if result.Latency < 2*time.Millisecond {
		t.Errorf("Latency = %v, should cover the completed round trip", result.Latency)
	}
}

func TestNew_RequiresGenerator(t *testing.T) {
	if _, err := New(Config{}, nil, nil, nil); err == nil {
		t.Error("New() without generator should fail")
	}
}

package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kavyahq/storyeval/resilience"
)

func TestClient_Do_POST_JSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", ct)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["model"] != "saarika:v2.5" {
			t.Errorf("unexpected body: %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"transcript": "hello"})
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/speech-to-text",
		Body:   map[string]string{"model": "saarika:v2.5"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsSuccess() {
		t.Errorf("expected success, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(resp.Body), "hello") {
		t.Errorf("unexpected body: %s", resp.Body)
	}
}

func TestClient_Do_Multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			t.Errorf("expected multipart/form-data, got %s", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("model"); got != "saarika:v2.5" {
			t.Errorf("expected model field, got %q", got)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer f.Close()
		if hdr.Filename != "clip.wav" {
			t.Errorf("expected clip.wav, got %s", hdr.Filename)
		}
		if ct := hdr.Header.Get("Content-Type"); ct != "audio/wav" {
			t.Errorf("expected audio/wav part, got %s", ct)
		}
		data, _ := io.ReadAll(f)
		if string(data) != "RIFFfake" {
			t.Errorf("unexpected file content: %q", data)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	resp, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/speech-to-text",
		Body: &MultipartBody{
			Fields: map[string]string{"model": "saarika:v2.5"},
			Files: []FileField{{
				FieldName:   "file",
				FileName:    "clip.wav",
				ContentType: "audio/wav",
				Data:        []byte("RIFFfake"),
			}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestClient_Do_APIKeyHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("api-subscription-key"); got != "sk-test" {
			t.Errorf("expected api key header, got %q", got)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL, Auth: APIKeyAuthHeader("sk-test", "api-subscription-key")})
	if _, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_Do_APIKeyQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("key"); got != "gm-test" {
			t.Errorf("expected key query param, got %q", got)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL, Auth: APIKeyAuthQuery("gm-test", "key")})
	if _, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/v1beta/models/x:generateContent", Body: "{}"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_Do_RateLimitClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("quota exceeded"))
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if err == nil {
		t.Fatal("expected error for 429")
	}
	if !IsRateLimit(err) {
		t.Errorf("expected rate limit classification, got %v", err)
	}
	if resp == nil || resp.StatusCode != 429 {
		t.Error("expected response alongside classified error")
	}
}

func TestClient_Do_ServerErrorClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if !IsServerError(err) {
		t.Errorf("expected server error classification, got %v", err)
	}
	if !IsRetryable(err) {
		t.Error("5xx should be retryable")
	}
}

func TestClient_Do_RetriesWithConfig(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	retry := resilience.RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		RetryIf:        IsRetryable,
	}
	c, _ := New(Config{BaseURL: srv.URL, Retry: &retry})

	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected eventual 200, got %d", resp.StatusCode)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestClient_Do_ConnectionError(t *testing.T) {
	c, _ := New(Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	var cerr *Error
	if !errors.As(err, &cerr) || cerr.Code != ErrCodeConnection {
		t.Errorf("expected connection error, got %v", err)
	}
}

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		status int
		code   ErrorCode
		nilErr bool
	}{
		{200, 0, true},
		{204, 0, true},
		{400, ErrCodeValidation, false},
		{401, ErrCodeAuth, false},
		{404, ErrCodeNotFound, false},
		{429, ErrCodeRateLimit, false},
		{500, ErrCodeServer, false},
	}
	for _, tt := range tests {
		err := ClassifyStatusCode(tt.status, nil)
		if tt.nilErr {
			if err != nil {
				t.Errorf("status %d: expected nil, got %v", tt.status, err)
			}
			continue
		}
		if err == nil || err.Code != tt.code {
			t.Errorf("status %d: expected code %v, got %v", tt.status, tt.code, err)
		}
	}
}

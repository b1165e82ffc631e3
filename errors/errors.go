// Package errors provides the error taxonomy shared by both pipelines.
// Every error crossing a per-file boundary is classified as one of the
// codes in codes.go so the batch drivers can decide between bounded retry,
// sentinel degradation, and an error row.
package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Constructors ---

// RateLimited creates an error for a remote 429 response.
func RateLimited(service string) *AppError {
	return &AppError{
		Code: ErrCodeRateLimited, Message: fmt.Sprintf("%s rate limit exceeded", service),
		Retryable: true,
		Details:   map[string]any{"service": service},
	}
}

// Remote creates an error for a non-429 remote failure.
func Remote(service string, statusCode int, body string) *AppError {
	return &AppError{
		Code: ErrCodeRemote, Message: fmt.Sprintf("%s error %d: %s", service, statusCode, body),
		Retryable: false,
		Details:   map[string]any{"service": service, "status_code": statusCode},
	}
}

// Parse creates an error for malformed structured model output.
func Parse(reason string) *AppError {
	return &AppError{
		Code: ErrCodeParse, Message: reason,
		Retryable: false,
	}
}

// LocalIO creates an error for an unreadable input file.
func LocalIO(path string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeLocalIO, Message: fmt.Sprintf("cannot read %s", path),
		Retryable: false,
		Details:   map[string]any{"path": path},
		Cause:     cause,
	}
}

// Config creates an error for invalid configuration.
func Config(message string) *AppError {
	return &AppError{Code: ErrCodeConfig, Message: message}
}

// --- Inspection helpers ---

// As finds the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}

// CodeOf returns the error code of err, or ErrCodeRemote for untyped errors.
func CodeOf(err error) ErrorCode {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return ErrCodeRemote
}

// IsRateLimited checks whether err is a rate-limit error.
func IsRateLimited(err error) bool {
	return CodeOf(err) == ErrCodeRateLimited
}

// IsRemote checks whether err is a remote-service error.
func IsRemote(err error) bool {
	return CodeOf(err) == ErrCodeRemote
}

// IsParse checks whether err is a parse error.
func IsParse(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == ErrCodeParse
}

// IsLocalIO checks whether err is a local input error.
func IsLocalIO(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == ErrCodeLocalIO
}

// IsConfig checks whether err is a configuration error.
func IsConfig(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == ErrCodeConfig
}

// IsRetryable checks whether err can be retried.
func IsRetryable(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Retryable
}

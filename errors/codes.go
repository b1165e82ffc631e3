package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	// ErrCodeRateLimited indicates the remote service returned HTTP 429.
	// Recoverable via bounded retry.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodeRemote indicates a non-2xx remote failure other than 429.
	// Fatal to the current file only.
	ErrCodeRemote ErrorCode = "REMOTE_ERROR"
	// ErrCodeParse indicates malformed structured output from a model.
	// Degrades to a sentinel record.
	ErrCodeParse ErrorCode = "PARSE_ERROR"
	// ErrCodeLocalIO indicates an unreadable or unusable local input file.
	// Degrades to an error row.
	ErrCodeLocalIO ErrorCode = "LOCAL_IO_ERROR"
	// ErrCodeConfig indicates invalid or incomplete configuration.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeRateLimited: true,
	ErrCodeRemote:      false,
	ErrCodeParse:       false,
	ErrCodeLocalIO:     false,
	ErrCodeConfig:      false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

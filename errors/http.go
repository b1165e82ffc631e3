package errors

import (
	"errors"
	"strings"

	"github.com/kavyahq/storyeval/httpclient"
)

// maxBodySnippet bounds how much remote response body lands in error
// messages and, through them, in report rows.
const maxBodySnippet = 200

// FromHTTP converts an httpclient error into the application taxonomy:
// 429 becomes RateLimited, everything else remote becomes Remote.
// Non-httpclient errors pass through unchanged.
func FromHTTP(service string, err error) error {
	if err == nil {
		return nil
	}

	var httpErr *httpclient.Error
	if !errors.As(err, &httpErr) {
		return err
	}

	if httpErr.Code == httpclient.ErrCodeRateLimit {
		return RateLimited(service).WithCause(err)
	}

	snippet := strings.TrimSpace(string(httpErr.Body))
	if len(snippet) > maxBodySnippet {
		snippet = snippet[:maxBodySnippet]
	}
	return Remote(service, httpErr.StatusCode, snippet).WithCause(err)
}

package extract

import (
	"errors"
	"fmt"
)

// ErrEmptyTranscript is returned before any network call when the transcript
// is empty after trimming.
var ErrEmptyTranscript = errors.New("transcript is empty")

// ErrExtractionFailed covers network failure, timeout, a non-OK service
// response, and a malformed or non-conforming model reply. Extraction is
// all-or-nothing: no partial draft ever accompanies this error.
var ErrExtractionFailed = errors.New("extraction failed")

// RetryableError indicates a transient service failure worth retrying within
// the same extraction call.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *RetryableError
	return errors.As(err, &retryErr)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

package batches

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig means a required docint or storage setting is missing.
	ErrConfig = errors.New("batch configuration incomplete")
	// ErrInvalidPrefix rejects a caller prefix outside [A-Za-z0-9_-/].
	ErrInvalidPrefix = errors.New("invalid prefix")
)

const maxUpstreamBody = 500

// UpstreamError is a non-2xx answer from the analysis service.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("analyzeBatch returned %d: %s", e.Status, e.Body)
}

func newUpstreamError(status int, body []byte) *UpstreamError {
	return &UpstreamError{Status: status, Body: truncateRunes(string(body), maxUpstreamBody)}
}

func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

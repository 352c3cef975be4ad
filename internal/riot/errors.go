package riot

import (
	"errors"
	"fmt"
	"time"
)

// Terminal error kinds surfaced to callers. Retryable failures (429,
// transport errors) are handled inside the client's retry loop and only
// escalate to these once the budget is exhausted.
var (
	ErrRateLimited  = errors.New("riot: rate limited, retry budget exhausted")
	ErrTransient    = errors.New("riot: transient upstream failure")
	ErrNotFound     = errors.New("riot: not found")
	ErrUnauthorized = errors.New("riot: unauthorized")
)

// StatusError carries the status and body of an unexpected non-2xx response
// for diagnostics.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("riot: unexpected status %d: %s", e.Status, e.Body)
}

// rateLimitedError is the in-loop form of a 429; it carries the server's
// Retry-After duration so the retry loop can honor it.
type rateLimitedError struct {
	retryAfter time.Duration
}

func (e *rateLimitedError) Error() string {
	return fmt.Sprintf("riot: rate limited, retry after %s", e.retryAfter)
}

// transientError is the in-loop form of a network-level failure.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return "riot: " + e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

package providers

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrProviderUnavailable is returned when a wrapper has nothing to delegate to.
var ErrProviderUnavailable = errors.New("provider unavailable")

// RateLimitError is an upstream 429. RetryAfter is zero when the response carried no hint.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// permanent reports errors a retry cannot fix: cancellation, a missing provider,
// or a rate limit with no Retry-After to wait on.
func permanent(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return true
	case errors.Is(err, ErrProviderUnavailable):
		return true
	}
	if rl, ok := AsRateLimitError(err); ok {
		return rl.RetryAfter <= 0
	}
	return false
}

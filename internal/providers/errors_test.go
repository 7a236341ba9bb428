package providers

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestRateLimitErrorString(t *testing.T) {
	err := &RateLimitError{
		Provider:   "p",
		StatusCode: 429,
		Message:    "rate limited",
	}
	if got := err.Error(); got == "" || got == "rate limited" {
		t.Fatalf("expected status in error string, got %q", got)
	}

	rl, ok := AsRateLimitError(fmt.Errorf("wrapped: %w", err))
	if !ok || rl == nil {
		t.Fatalf("expected to unwrap rate limit error")
	}

	noStatus := &RateLimitError{}
	if got := noStatus.Error(); got == "" {
		t.Fatalf("expected fallback message")
	}
}

func TestPermanentClassifiesErrors(t *testing.T) {
	cases := map[string]struct {
		err  error
		want bool
	}{
		"nil":                  {nil, false},
		"plain":                {errors.New("502 bad gateway"), false},
		"canceled":             {fmt.Errorf("fetch teams: %w", context.Canceled), true},
		"deadline":             {context.DeadlineExceeded, true},
		"unavailable":          {ErrProviderUnavailable, true},
		"rate limit no hint":   {&RateLimitError{StatusCode: 429}, true},
		"rate limit with hint": {&RateLimitError{StatusCode: 429, RetryAfter: time.Second}, false},
	}
	for name, tc := range cases {
		if got := permanent(tc.err); got != tc.want {
			t.Fatalf("%s: expected permanent=%v, got %v", name, tc.want, got)
		}
	}
}

package extract

import (
	"context"
	"errors"
	"strings"
	"time"
)

// RetryPolicy is a bounded exponential-backoff policy for external
// service calls. Only failures the Retryable predicate accepts are
// retried; everything else fails fast. Sleep is injectable so tests
// can run with a fake clock.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Retryable   func(error) bool
	Sleep       func(time.Duration)
}

// DefaultRetryPolicy matches the service quotas the pipeline runs
// against: three attempts, 1s/2s backoff, transient failures only.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Retryable:   IsTransient,
	}
}

// Do runs fn until it succeeds, exhausts the attempt budget, hits a
// non-retryable failure, or the context is cancelled. Returns the last
// error observed.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	retryable := p.Retryable
	if retryable == nil {
		retryable = IsTransient
	}

	var lastErr error
	delay := p.BaseDelay
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}
		if attempt < attempts-1 {
			sleep(delay)
			delay *= 2
		}
	}
	return lastErr
}

// IsTransient classifies an error as a retryable external-service
// failure (rate limit, timeout, temporary unavailability). Vendor SDKs
// surface these as opaque wrapped errors, so the check is partly
// textual.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"429",
		"rate limit",
		"ratelimit",
		"quota",
		"resource exhausted",
		"timeout",
		"deadline exceeded",
		"503",
		"unavailable",
		"overloaded",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

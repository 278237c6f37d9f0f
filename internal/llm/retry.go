package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	defaultMaxRetries  = 3
	defaultInitBackoff = 1 * time.Second
	defaultMaxBackoff  = 30 * time.Second
	backoffFactor      = 2.0
)

// retryPolicy controls the exponential backoff applied to transient
// upstream failures.
type retryPolicy struct {
	maxRetries  int
	initBackoff time.Duration
	maxBackoff  time.Duration
}

func newRetryPolicy(maxRetries int) retryPolicy {
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}
	return retryPolicy{
		maxRetries:  maxRetries,
		initBackoff: defaultInitBackoff,
		maxBackoff:  defaultMaxBackoff,
	}
}

// run executes fn, retrying rate-limit and server errors with exponential
// backoff. Billing errors and other client errors fail immediately.
func (p retryPolicy) run(ctx context.Context, fn func() error) error {
	backoff := p.initBackoff
	var err error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if isBillingError(err) {
			return fmt.Errorf("billing/quota error (not retryable): %w", err)
		}
		if !isRetryableError(err) {
			return err
		}
		if attempt == p.maxRetries {
			return fmt.Errorf("request failed after %d retries: %w", p.maxRetries, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = time.Duration(float64(backoff) * backoffFactor)
		if backoff > p.maxBackoff {
			backoff = p.maxBackoff
		}
	}
	return err
}

// isRetryableError determines if an error should trigger a retry.
func isRetryableError(err error) bool {
	return isRateLimitError(err) || isServerError(err)
}

// isRateLimitError detects rate limiting and capacity errors.
func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "overloaded") ||
		strings.Contains(errStr, "capacity")
}

// isServerError detects transient server-side errors.
func isServerError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "502") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "504") ||
		strings.Contains(errStr, "bad gateway") ||
		strings.Contains(errStr, "service unavailable") ||
		strings.Contains(errStr, "gateway timeout") ||
		strings.Contains(errStr, "temporarily unavailable")
}

// isBillingError detects billing and quota problems that retrying cannot
// fix.
func isBillingError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "billing") ||
		strings.Contains(errStr, "payment") ||
		strings.Contains(errStr, "credits") ||
		strings.Contains(errStr, "quota") ||
		strings.Contains(errStr, "402") ||
		strings.Contains(errStr, "insufficient") ||
		strings.Contains(errStr, "subscription") ||
		strings.Contains(errStr, "expired")
}

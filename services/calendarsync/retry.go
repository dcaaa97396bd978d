package calendarsync

import (
	"context"
	"time"
)

// RetryPolicy is the single retry policy applied at the calendar-fetch
// boundary: bounded attempts with exponential backoff, each attempt under
// its own timeout. Call sites do not roll their own retries.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// Timeout bounds each individual attempt.
	Timeout time.Duration
}

// DefaultRetryPolicy matches the sync defaults: three attempts, 250ms base
// backoff, 5s per-attempt deadline.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   250 * time.Millisecond,
		MaxDelay:    2 * time.Second,
		Timeout:     5 * time.Second,
	}
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts <= 0 {
		return 1
	}
	return p.MaxAttempts
}

// Do runs fn under the policy, returning the last error when all attempts
// fail. The parent context cancels the whole sequence.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error
	delay := p.BaseDelay

	for attempt := 1; attempt <= p.attempts(); attempt++ {
		attemptCtx := ctx
		var cancel context.CancelFunc
		if p.Timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, p.Timeout)
		}
		lastErr = fn(attemptCtx)
		if cancel != nil {
			cancel()
		}
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt == p.attempts() {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if p.MaxDelay > 0 && delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
	return lastErr
}

package calendarsync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryPolicySucceedsAfterTransientFailures(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}

	calls := 0
	err := policy.Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryPolicyReturnsLastError(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 2, BaseDelay: time.Millisecond}

	boom := errors.New("boom")
	calls := 0
	err := policy.Do(context.Background(), func(context.Context) error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestRetryPolicyStopsOnContextCancel(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 5, BaseDelay: 50 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := policy.Do(ctx, func(context.Context) error {
		calls++
		cancel()
		return errors.New("fail")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetryPolicyAttemptTimeout(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 1, Timeout: 10 * time.Millisecond}

	err := policy.Do(context.Background(), func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRetryPolicyZeroAttemptsRunsOnce(t *testing.T) {
	var policy RetryPolicy

	calls := 0
	err := policy.Do(context.Background(), func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fastPolicy(attempts int) RetryPolicy {
	return RetryPolicy{MaxAttempts: attempts, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

func TestRetry_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := fastPolicy(3).Do(context.Background(), zap.NewNop(), ErrKindFetchError, func(context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_RetriesTransientThenSucceeds(t *testing.T) {
	calls := 0
	err := fastPolicy(3).Do(context.Background(), zap.NewNop(), ErrKindFetchError, func(context.Context) error {
		calls++
		if calls < 3 {
			return NewExtractionError(ErrKindRateLimited, errors.New("429"))
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_NonRetryableFailsImmediately(t *testing.T) {
	calls := 0
	authErr := NewExtractionError(ErrKindAuthFailure, errors.New("bad key"))
	err := fastPolicy(3).Do(context.Background(), zap.NewNop(), ErrKindFetchError, func(context.Context) error {
		calls++
		return authErr
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, ErrKindAuthFailure, KindOf(err, ""))
}

func TestRetry_ExhaustedWrapsLastError(t *testing.T) {
	calls := 0
	err := fastPolicy(3).Do(context.Background(), zap.NewNop(), ErrKindProviderUnavailable, func(context.Context) error {
		calls++
		return NewExtractionError(ErrKindRateLimited, errors.New("429"))
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, ErrKindExhaustedRetries, KindOf(err, ""))

	var xerr *ExtractionError
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, ErrKindRateLimited, KindOf(xerr.Err, ""))
}

func TestRetry_UntypedErrorUsesFallbackKind(t *testing.T) {
	calls := 0
	err := fastPolicy(2).Do(context.Background(), zap.NewNop(), ErrKindFetchError, func(context.Context) error {
		calls++
		return errors.New("connection reset")
	})
	require.Error(t, err)
	assert.Equal(t, 2, calls, "fetch errors are retryable by fallback kind")
	assert.Equal(t, ErrKindExhaustedRetries, KindOf(err, ""))
}

func TestRetry_ContextCancelStopsBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Minute, MaxDelay: time.Minute}

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- policy.Do(ctx, zap.NewNop(), ErrKindFetchError, func(context.Context) error {
			calls++
			return NewExtractionError(ErrKindTimeout, errors.New("deadline"))
		})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	case <-time.After(time.Second):
		t.Fatal("retry did not stop on context cancel")
	}
}

func TestRetryPolicy_DelayCapped(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 10, BaseDelay: 2 * time.Second, MaxDelay: 30 * time.Second}

	assert.Equal(t, 2*time.Second, p.delay(1))
	assert.Equal(t, 4*time.Second, p.delay(2))
	assert.Equal(t, 16*time.Second, p.delay(4))
	assert.Equal(t, 30*time.Second, p.delay(5), "2s<<4 = 32s caps at 30s")
	assert.Equal(t, 30*time.Second, p.delay(40), "shift overflow caps at max")
}

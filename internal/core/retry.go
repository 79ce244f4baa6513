package core

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RetryPolicy is the capped exponential backoff applied to transient
// provider and fetch failures.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryPolicy matches the documented budget: base 2s, cap 30s,
// three attempts.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: 2 * time.Second, MaxDelay: 30 * time.Second}
}

// delay returns the backoff before the given 1-based attempt.
func (p RetryPolicy) delay(attempt int) time.Duration {
	d := p.BaseDelay << uint(attempt-1)
	if d > p.MaxDelay || d <= 0 {
		d = p.MaxDelay
	}
	return d
}

// Do runs op, retrying retryable failures per the policy. Non-retryable
// failures return immediately. When the budget is exhausted the last
// error is wrapped as ExhaustedRetries.
func (p RetryPolicy) Do(ctx context.Context, logger *zap.Logger, fallback ErrorKind, op func(context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		kind := KindOf(err, fallback)
		if !kind.Retryable() {
			return err
		}
		if attempt == attempts {
			break
		}

		wait := p.delay(attempt)
		logger.Warn("transient failure, backing off",
			zap.String("kind", string(kind)),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return NewExtractionError(ErrKindExhaustedRetries, lastErr)
}

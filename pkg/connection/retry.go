package connection

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrRetriesExhausted is returned when every attempt failed.
var ErrRetriesExhausted = errors.New("retries exhausted")

// DefaultAttempts is the number of dial attempts before giving up.
const DefaultAttempts = 8

// AttemptFunc performs one connection attempt.
type AttemptFunc func(ctx context.Context) error

// Retrier runs an AttemptFunc until it succeeds, the context is cancelled
// or the attempt budget is spent.
type Retrier struct {
	backoff  *Backoff
	attempts int

	// OnRetry, if set, is called before each wait with the 1-based attempt
	// that just failed, its error and the delay before the next one.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// NewRetrier creates a Retrier. attempts <= 0 selects DefaultAttempts;
// a nil backoff selects NewBackoff().
func NewRetrier(b *Backoff, attempts int) *Retrier {
	if b == nil {
		b = NewBackoff()
	}
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	return &Retrier{backoff: b, attempts: attempts}
}

// Do runs fn. The returned error wraps both ErrRetriesExhausted and the
// last attempt's error when the budget runs out.
func (r *Retrier) Do(ctx context.Context, fn AttemptFunc) error {
	r.backoff.Reset()

	var lastErr error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == r.attempts {
			break
		}

		delay := r.backoff.Next()
		if r.OnRetry != nil {
			r.OnRetry(attempt, lastErr, delay)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, r.attempts, lastErr)
}

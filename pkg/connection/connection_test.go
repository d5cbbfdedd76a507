package connection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoff(t *testing.T) {
	t.Run("DefaultSequence", func(t *testing.T) {
		b := NewBackoff()

		expected := []time.Duration{
			100 * time.Millisecond,
			200 * time.Millisecond,
			400 * time.Millisecond,
			800 * time.Millisecond,
			1600 * time.Millisecond,
			2 * time.Second,
			2 * time.Second,
		}

		for i, exp := range expected {
			base := b.Current()
			_ = b.Next()
			assert.InDelta(t, float64(exp), float64(base), float64(time.Millisecond), "attempt %d", i)
		}
	})

	t.Run("JitterRange", func(t *testing.T) {
		b := NewBackoff()
		for i := 0; i < 20; i++ {
			b.Reset()
			d := b.Next()
			assert.GreaterOrEqual(t, d, InitialBackoff)
			assert.LessOrEqual(t, d, time.Duration(float64(InitialBackoff)*(1+JitterFactor))+time.Millisecond)
		}
	})

	t.Run("Reset", func(t *testing.T) {
		b := NewBackoff()
		for i := 0; i < 4; i++ {
			b.Next()
		}
		require.Greater(t, b.Current(), InitialBackoff)

		b.Reset()
		assert.Equal(t, InitialBackoff, b.Current())
		assert.Equal(t, 0, b.Attempts())
	})

	t.Run("CustomConfig", func(t *testing.T) {
		b := NewBackoffWithConfig(BackoffConfig{
			Initial:    10 * time.Millisecond,
			Max:        50 * time.Millisecond,
			Multiplier: 2.0,
		})

		expected := []time.Duration{
			10 * time.Millisecond,
			20 * time.Millisecond,
			40 * time.Millisecond,
			50 * time.Millisecond,
			50 * time.Millisecond,
		}
		for i, exp := range expected {
			assert.Equal(t, exp, b.Next(), "attempt %d", i)
		}
		assert.Equal(t, 5, b.Attempts())
	})
}

func fastBackoff() *Backoff {
	return NewBackoffWithConfig(BackoffConfig{Initial: time.Millisecond, Max: 2 * time.Millisecond})
}

func TestRetrier(t *testing.T) {
	t.Run("SucceedsAfterFailures", func(t *testing.T) {
		r := NewRetrier(fastBackoff(), 5)

		var retries []int
		r.OnRetry = func(attempt int, err error, delay time.Duration) {
			retries = append(retries, attempt)
		}

		calls := 0
		err := r.Do(context.Background(), func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("connection refused")
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []int{1, 2}, retries)
	})

	t.Run("Exhausted", func(t *testing.T) {
		r := NewRetrier(fastBackoff(), 3)
		dialErr := errors.New("connection refused")

		calls := 0
		err := r.Do(context.Background(), func(ctx context.Context) error {
			calls++
			return dialErr
		})

		assert.Equal(t, 3, calls)
		assert.ErrorIs(t, err, ErrRetriesExhausted)
		assert.ErrorIs(t, err, dialErr)
	})

	t.Run("ContextCancelled", func(t *testing.T) {
		r := NewRetrier(NewBackoffWithConfig(BackoffConfig{Initial: time.Hour}), 3)
		ctx, cancel := context.WithCancel(context.Background())

		err := r.Do(ctx, func(ctx context.Context) error {
			cancel()
			return errors.New("connection refused")
		})

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Defaults", func(t *testing.T) {
		r := NewRetrier(nil, 0)
		assert.Equal(t, DefaultAttempts, r.attempts)
		assert.NotNil(t, r.backoff)
	})
}

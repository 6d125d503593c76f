package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFlaky = errors.New("flaky")

func TestCallWithRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	fn := func(context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errFlaky
		}
		return 123, nil
	}

	got, err := CallWithRetry(context.Background(), fn, 5, time.Millisecond, nil)
	require.NoError(t, err)
	assert.Equal(t, 123, got)
	assert.Equal(t, 3, calls)
}

func TestCallWithRetry_GivesUp(t *testing.T) {
	calls := 0
	fn := func(context.Context) (int, error) {
		calls++
		return 7, errFlaky
	}

	got, err := CallWithRetry(context.Background(), fn, 3, time.Millisecond, nil)
	assert.ErrorIs(t, err, errFlaky)
	assert.Zero(t, got)
	assert.Equal(t, 3, calls)
}

func TestCallWithRetry_NotRetryable(t *testing.T) {
	calls := 0
	fatal := errors.New("fatal")
	fn := func(context.Context) (int, error) {
		calls++
		return 0, fatal
	}

	_, err := CallWithRetry(context.Background(), fn, 5, time.Millisecond, func(err error) bool {
		return !errors.Is(err, fatal)
	})
	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls)
}

func TestCallWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fn := func(context.Context) (int, error) {
		cancel()
		return 0, errFlaky
	}

	_, err := CallWithRetry(ctx, fn, 5, time.Second, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCallWithRetry_RejectsZeroAttempts(t *testing.T) {
	for _, attempts := range []int{0, -1} {
		calls := 0
		fn := func(context.Context) (int, error) {
			calls++
			return 123, nil
		}

		got, err := CallWithRetry(context.Background(), fn, attempts, time.Millisecond, nil)
		assert.ErrorIs(t, err, ErrNoAttempts)
		assert.NotContains(t, err.Error(), "%!w")
		assert.Zero(t, got)
		assert.Zero(t, calls)
	}
}

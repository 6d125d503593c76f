package utils

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNoAttempts is returned when CallWithRetry is asked for fewer than one attempt.
var ErrNoAttempts = errors.New("maxAttempts must be at least 1")

// CallWithRetry calls fn up to maxAttempts times, sleeping backoff between
// failed attempts. It gives up early when ctx is done or retryable reports
// false for the last error. A nil retryable retries every error.
func CallWithRetry[T any](ctx context.Context, fn func(context.Context) (T, error), maxAttempts int, backoff time.Duration, retryable func(error) bool) (T, error) {
	var zero T
	var err error

	if maxAttempts < 1 {
		return zero, fmt.Errorf("%w, got %d", ErrNoAttempts, maxAttempts)
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var t T
		t, err = fn(ctx)
		if err == nil {
			return t, nil
		}
		if retryable != nil && !retryable(err) {
			return zero, err
		}
		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("retry aborted after %d attempts: %w", attempt, ctx.Err())
		case <-time.After(backoff):
		}
	}

	return zero, fmt.Errorf("failed to call with retry after %d attempts: %w", maxAttempts, err)
}

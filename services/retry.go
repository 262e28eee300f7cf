package services

import (
	"context"
	"time"
)

const (
	imageMaxAttempts    = 3
	imageInitialBackoff = 2 * time.Second
	imageMaxBackoff     = 10 * time.Second
)

// withRetry runs fn up to attempts times, doubling the delay between tries
// from initial up to max. It respects context cancellation while waiting.
func withRetry(ctx context.Context, attempts int, initial, max time.Duration, fn func() (string, error)) (string, error) {
	var lastErr error
	backoff := initial

	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > max {
			backoff = max
		}
	}

	return "", lastErr
}

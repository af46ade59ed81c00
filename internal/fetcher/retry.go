package fetcher

import (
	"context"
	"time"
)

// Attempt runs op up to maxAttempts times, waiting delay between attempts.
// It returns the first successful result, or the last error once the budget
// is exhausted. Context cancellation ends the loop early.
func Attempt(ctx context.Context, maxAttempts int, delay time.Duration, op func(context.Context) ([]byte, error)) ([]byte, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := op(ctx)
		if err == nil {
			return data, nil
		}
		lastErr = err

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return nil, lastErr
}

package batch

import (
	"context"
	"time"
)

// Retry runs fn up to maxRetries+1 times, doubling the wait between
// attempts starting from initialDelay. The last error is returned if every
// attempt fails. Context cancellation aborts the wait and returns ctx.Err().
func Retry(ctx context.Context, maxRetries int, initialDelay time.Duration, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			wait := initialDelay << (attempt - 1)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if lastErr = fn(ctx); lastErr == nil {
			return nil
		}
	}

	return lastErr
}

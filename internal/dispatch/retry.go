package dispatch

import (
	"context"
	"time"
)

// sleepCtx waits for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// retry runs fn up to attempts times, sleeping backoff*n after the n-th
// failure (linear, so attempt 1 waits backoff, attempt 2 waits 2*backoff).
// It returns the number of attempts made and the last error.
//
// Edge cases:
//   - attempts < 1 is treated as 1.
//   - Context cancellation during a backoff wait aborts with ctx's error.
//
// The sleep parameter is a test seam; production passes sleepCtx.
func retry(ctx context.Context, attempts int, backoff time.Duration, sleep func(context.Context, time.Duration) error, fn func(context.Context) error) (int, error) {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for n := 1; n <= attempts; n++ {
		if err = fn(ctx); err == nil {
			return n, nil
		}
		if n == attempts {
			return n, err
		}
		if serr := sleep(ctx, time.Duration(n)*backoff); serr != nil {
			return n, serr
		}
	}
	return attempts, err
}

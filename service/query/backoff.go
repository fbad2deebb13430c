package query

import (
	"context"
	"math/rand/v2"
	"time"
)

const (
	defaultBaseDelay   = 500 * time.Millisecond
	defaultMaxDelay    = 20 * time.Second
	defaultMaxAttempts = 6
)

// backoff returns an exponential delay with equal jitter for the given attempt,
// counting from 1.
func backoff(base, ceiling time.Duration) func(attempt int) time.Duration {
	return func(attempt int) time.Duration {
		d := base
		for i := 1; i < attempt && d < ceiling; i++ {
			d *= 2
		}
		if d > ceiling {
			d = ceiling
		}
		half := d / 2
		return half + rand.N(half+1)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

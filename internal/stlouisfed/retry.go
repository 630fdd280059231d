package stlouisfed

import (
	"context"
	"time"
)

// Retry policy for recoverable API errors. FRED asks misbehaving clients to
// back off for several minutes, hence the long fixed delay.
const (
	fredMaxRetries = 3
	fredRetryDelay = 300 * time.Second
)

// RetryPolicy bounds how recoverable API errors (error code 429 or 500 in
// the response body) are retried: at most MaxRetries extra attempts with a
// fixed Delay between them.
type RetryPolicy struct {
	MaxRetries int
	Delay      time.Duration
}

// DefaultRetryPolicy returns the policy matching FRED's documented guidance.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: fredMaxRetries, Delay: fredRetryDelay}
}

// SleepFunc pauses for d or until ctx is done. Clients use it for both
// throttle and retry waits; tests inject a recording fake.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

package ratelimit

import (
	"context"
	"time"
)

// Limiter counts hits per key in fixed windows.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

func windowStart(now time.Time, window time.Duration) time.Time {
	return now.Truncate(window)
}

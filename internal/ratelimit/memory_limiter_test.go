package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryLimiter_WindowResets(t *testing.T) {
	limiter := NewMemoryLimiter(2, time.Minute)
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if ok, _ := limiter.Allow(ctx, "10.0.0.1"); !ok {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if ok, _ := limiter.Allow(ctx, "10.0.0.1"); ok {
		t.Fatal("third request in the window should be rejected")
	}
	if ok, _ := limiter.Allow(ctx, "10.0.0.2"); !ok {
		t.Fatal("other clients have their own budget")
	}

	now = now.Add(time.Minute)
	if ok, _ := limiter.Allow(ctx, "10.0.0.1"); !ok {
		t.Fatal("budget should reset after the window")
	}
}

func TestMemoryLimiter_EvictsStaleBuckets(t *testing.T) {
	limiter := NewMemoryLimiter(5, time.Minute)
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	_, _ = limiter.Allow(ctx, "a")
	_, _ = limiter.Allow(ctx, "b")

	now = now.Add(2 * time.Minute)
	_, _ = limiter.Allow(ctx, "c")

	if len(limiter.buckets) != 1 {
		t.Errorf("expected stale buckets to be evicted, have %d", len(limiter.buckets))
	}
}

func TestMemoryLimiter_Concurrent(t *testing.T) {
	const limit = 10
	limiter := NewMemoryLimiter(limit, time.Hour)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow(context.Background(), "same"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != limit {
		t.Errorf("expected exactly %d allowed requests, got %d", limit, allowed)
	}
}

func TestRedisLimiter_KeyPerWindow(t *testing.T) {
	limiter := NewRedisLimiter(nil, "task_tracker", 10, time.Minute)
	limiter.now = func() time.Time { return time.Date(2026, 10, 15, 12, 0, 30, 0, time.UTC) }

	first := limiter.Key("1.2.3.4")
	limiter.now = func() time.Time { return time.Date(2026, 10, 15, 12, 0, 59, 0, time.UTC) }
	if limiter.Key("1.2.3.4") != first {
		t.Error("expected the same key within one window")
	}

	limiter.now = func() time.Time { return time.Date(2026, 10, 15, 12, 1, 0, 0, time.UTC) }
	if limiter.Key("1.2.3.4") == first {
		t.Error("expected a new key in the next window")
	}
}

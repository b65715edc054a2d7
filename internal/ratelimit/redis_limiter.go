package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

// RedisLimiter shares counters between instances. Each window gets its own
// key that expires shortly after the window closes.
type RedisLimiter struct {
	client rueidis.Client
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedisLimiter(client rueidis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := r.Key(key)

	count, err := r.client.Do(ctx, r.client.B().Incr().Key(redisKey).Build()).AsInt64()
	if err != nil {
		return false, err
	}

	if count == 1 {
		ttl := int64((2 * r.window).Seconds())
		if err := r.client.Do(
			ctx,
			r.client.B().Expire().Key(redisKey).Seconds(ttl).Build(),
		).Error(); err != nil {
			return false, err
		}
	}

	return count <= int64(r.limit), nil
}

// Key returns the counter key for the current window.
func (r *RedisLimiter) Key(key string) string {
	return fmt.Sprintf("%s:ratelimit:%s:%d", r.prefix, key, windowStart(r.now(), r.window).Unix())
}

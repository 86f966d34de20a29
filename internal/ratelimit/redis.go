package ratelimit

import (
	"context"
	"time"

	"shramsiddhi/internal/redis"
)

const redisKeyPrefix = "ratelimit:"

// RedisCounter shares windows between server instances and across restarts.
type RedisCounter struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client, now: time.Now}
}

func (r *RedisCounter) Hit(ctx context.Context, key string, d time.Duration) (int64, time.Time, error) {
	count, ttl, err := r.client.IncrWindow(ctx, redisKeyPrefix+key, d)
	if err != nil {
		return 0, time.Time{}, err
	}
	return count, r.now().Add(ttl), nil
}

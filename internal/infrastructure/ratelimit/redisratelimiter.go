package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "kinetix:ratelimit"

// granularity pairs a window with the short label used in redis keys, so
// keys stay readable when inspecting a hot client by hand.
type granularity struct {
	label  string
	window time.Duration
}

var granularities = []granularity{
	{"1m", time.Minute},
	{"1h", time.Hour},
	{"1d", 24 * time.Hour},
}

// RedisRateLimiter throttles back-office API clients with one sliding
// window per granularity. Each window is a sorted set of request
// timestamps; old entries age out on every check.
type RedisRateLimiter struct {
	client *redis.Client
}

func NewRedisRateLimiter(client *redis.Client) RateLimiter {
	return &RedisRateLimiter{client: client}
}

func (l *RedisRateLimiter) Allow(key string, config RateLimitConfig) (bool, error) {
	ctx := context.Background()
	now := time.Now()
	limits := []int{config.RequestsPerMinute, config.RequestsPerHour, config.RequestsPerDay}

	for i, g := range granularities {
		if limits[i] <= 0 {
			continue
		}

		used, err := l.countAndRecord(ctx, l.windowKey(key, g), g.window, now)
		if err != nil {
			return false, err
		}
		if used >= int64(limits[i]) {
			return false, nil
		}
	}

	return true, nil
}

// countAndRecord prunes expired entries, counts what is left and records
// the current request, all in one pipeline round trip.
func (l *RedisRateLimiter) countAndRecord(ctx context.Context, redisKey string, window time.Duration, now time.Time) (int64, error) {
	cutoff := strconv.FormatInt(now.Add(-window).UnixNano(), 10)
	stamp := now.UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", cutoff)
	used := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(stamp), Member: stamp})
	pipe.Expire(ctx, redisKey, window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("rate limit check failed: %w", err)
	}

	return used.Val(), nil
}

func (l *RedisRateLimiter) GetRemaining(key string, window time.Duration) (int64, error) {
	g, err := granularityFor(window)
	if err != nil {
		return 0, err
	}

	ctx := context.Background()
	redisKey := l.windowKey(key, g)
	cutoff := strconv.FormatInt(time.Now().Add(-window).UnixNano(), 10)

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", cutoff)
	used := pipe.ZCard(ctx, redisKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to read window usage: %w", err)
	}

	return used.Val(), nil
}

func (l *RedisRateLimiter) Reset(key string) error {
	ctx := context.Background()

	for _, g := range granularities {
		if err := l.client.Del(ctx, l.windowKey(key, g)).Err(); err != nil {
			return fmt.Errorf("failed to reset window %s: %w", g.label, err)
		}
	}

	return nil
}

func (l *RedisRateLimiter) windowKey(identifier string, g granularity) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, identifier, g.label)
}

func granularityFor(window time.Duration) (granularity, error) {
	for _, g := range granularities {
		if g.window == window {
			return g, nil
		}
	}
	return granularity{}, fmt.Errorf("no rate limit window of %s", window)
}

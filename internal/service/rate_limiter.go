package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrWithTTLScript counts a hit and starts the window on the first one.
// Returns {count, pttl}.
var incrWithTTLScript = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	return {count, redis.call('PTTL', KEYS[1])}
`)

const RedisRateLimitKeyPrefix = "ratelimit:"

type RateLimiter interface {
	// Allow registers one hit for key and reports whether it is within the
	// limit, plus the time left in the current window.
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// redisRateLimiter is a fixed-window counter shared by every API instance.
type redisRateLimiter struct {
	redisClient *redis.Client
	scope       string
	limit       int
	window      time.Duration
}

func NewRedisRateLimiter(redisClient *redis.Client, scope string, limit int, window time.Duration) RateLimiter {
	if limit <= 0 {
		limit = 5
	}
	if window <= 0 {
		window = time.Minute
	}
	return &redisRateLimiter{
		redisClient: redisClient,
		scope:       scope,
		limit:       limit,
		window:      window,
	}
}

func (l *redisRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	redisKey := fmt.Sprintf("%s%s:%s", RedisRateLimitKeyPrefix, l.scope, key)

	res, err := incrWithTTLScript.Run(ctx, l.redisClient, []string{redisKey}, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return false, 0, err
	}

	count, ttl := res[0], time.Duration(res[1])*time.Millisecond
	if ttl < 0 {
		ttl = l.window
	}
	return count <= int64(l.limit), ttl, nil
}

package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/task-manager/pkg/database"
	"github.com/redis/go-redis/v9"
)

// RateDecision is the outcome of one rate limit check
type RateDecision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter is a sliding-window log limiter backed by a Redis sorted set per key
type RateLimiter struct {
	redis *database.Redis
	now   func() time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(redis *database.Redis) *RateLimiter {
	return &RateLimiter{redis: redis, now: time.Now}
}

// Allow records a request for key and reports whether it fits in limit requests per window.
// Rejected requests are not recorded.
func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (RateDecision, error) {
	now := r.now()
	redisKey := "ratelimit:" + key
	windowStart := strconv.FormatInt(now.Add(-window).UnixMilli(), 10)

	var count *redis.IntCmd
	_, err := r.redis.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, redisKey, "-inf", "("+windowStart)
		count = pipe.ZCard(ctx, redisKey)
		return nil
	})
	if err != nil {
		return RateDecision{}, fmt.Errorf("failed to count requests: %w", err)
	}

	if count.Val() >= int64(limit) {
		retryAfter := window
		oldest, err := r.redis.Client.ZRangeWithScores(ctx, redisKey, 0, 0).Result()
		if err == nil && len(oldest) > 0 {
			retryAfter = time.UnixMilli(int64(oldest[0].Score)).Add(window).Sub(now)
		}
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return RateDecision{Allowed: false, Remaining: 0, RetryAfter: retryAfter}, nil
	}

	_, err = r.redis.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, redisKey, redis.Z{
			Score:  float64(now.UnixMilli()),
			Member: uuid.NewString(),
		})
		pipe.PExpire(ctx, redisKey, window)
		return nil
	})
	if err != nil {
		return RateDecision{}, fmt.Errorf("failed to record request: %w", err)
	}

	return RateDecision{Allowed: true, Remaining: limit - int(count.Val()) - 1}, nil
}

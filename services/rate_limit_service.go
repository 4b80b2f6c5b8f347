package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiterInterface lets the middleware be tested without Redis.
type RateLimiterInterface interface {
	// CheckLimit counts a hit against key and reports whether the caller is
	// over the limit, along with how long until the window resets.
	CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error)
}

// RateLimitService implements fixed-window rate limiting on Redis.
type RateLimitService struct {
	redisClient *redis.Client
	keyPrefix   string
}

func NewRateLimitService(redisClient *redis.Client) *RateLimitService {
	return &RateLimitService{
		redisClient: redisClient,
		keyPrefix:   "rate_limit:",
	}
}

// CheckLimit increments the counter for key and sets the window expiry on the
// first hit. It returns true when the counter exceeds limit.
func (s *RateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	redisKey := s.keyPrefix + key

	pipe := s.redisClient.Pipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to check rate limit: %w", err)
	}

	count := incr.Val()
	if count <= int64(limit) {
		return false, 0, nil
	}

	ttl, err := s.redisClient.TTL(ctx, redisKey).Result()
	if err != nil {
		return true, window, nil
	}
	return true, ttl, nil
}

package redis

import (
	"context"
	"fmt"
	"time"
)

// RateLimiter throttles per-user actions with a fixed window counter,
// used to slow down code-guessing on the redemption endpoint.
type RateLimiter struct {
	client RedisClient
}

func NewRateLimiter(client RedisClient) *RateLimiter {
	return &RateLimiter{client: client}
}

func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := r.client.Incr(ctx, key)
	if err != nil {
		return false, err
	}

	if count == 1 {
		if err := r.client.Expire(ctx, key, window); err != nil {
			return false, err
		}
	}

	if count > int64(limit) {
		return false, nil
	}
	return true, nil
}

func RedeemKey(userID string) string {
	return fmt.Sprintf("rate_limit:redeem:%s", userID)
}

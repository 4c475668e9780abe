package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter counts login attempts per username in a fixed window.
// Key format: login:attempts:<lowercased username>
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

// NewLoginLimiter creates a limiter allowing maxAttempts per window.
func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, maxAttempts: int64(maxAttempts), window: window}
}

// Allow records one attempt and reports whether it is still within the limit.
// The key is created together with its TTL, so the window starts at the
// first attempt and always expires.
func (l *LoginLimiter) Allow(ctx context.Context, username string) (bool, error) {
	key := attemptsKey(username)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, key, 0, l.window)
		incr = pipe.Incr(ctx, key)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("login limiter: %w", err)
	}

	return incr.Val() <= l.maxAttempts, nil
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, username string) error {
	return l.client.Del(ctx, attemptsKey(username)).Err()
}

func attemptsKey(username string) string {
	return "login:attempts:" + strings.ToLower(username)
}

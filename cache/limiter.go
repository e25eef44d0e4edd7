package cache

import (
	"context"
	"fmt"
	"time"

	"HospitalHub/models"

	"github.com/redis/go-redis/v9"
)

const LoginFailKeyPrefix = "LOGIN_FAIL:"

// LoginLimiter counts failed logins per email outside the credential store,
// so a failed attempt never writes to an account record.
type LoginLimiter interface {
	Blocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) (int64, error)
	Reset(ctx context.Context, email string) error
}

type RedisLoginLimiter struct {
	client      *redis.Client
	maxFailures int64
	window      time.Duration
}

func NewRedisLoginLimiter(client *redis.Client, maxFailures int, window time.Duration) *RedisLoginLimiter {
	return &RedisLoginLimiter{client: client, maxFailures: int64(maxFailures), window: window}
}

func loginFailKey(email string) string {
	return LoginFailKeyPrefix + models.NormalizeEmail(email)
}

func (l *RedisLoginLimiter) Blocked(ctx context.Context, email string) (bool, error) {
	if l.maxFailures <= 0 {
		return false, nil
	}
	count, err := l.client.Get(ctx, loginFailKey(email)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read login failures: %w", err)
	}
	return count >= l.maxFailures, nil
}

func (l *RedisLoginLimiter) RecordFailure(ctx context.Context, email string) (int64, error) {
	key := loginFailKey(email)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("increment login failures: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return count, fmt.Errorf("expire login failures: %w", err)
		}
	}
	return count, nil
}

func (l *RedisLoginLimiter) Reset(ctx context.Context, email string) error {
	return l.client.Del(ctx, loginFailKey(email)).Err()
}

type NoopLoginLimiter struct{}

func (NoopLoginLimiter) Blocked(context.Context, string) (bool, error) { return false, nil }

func (NoopLoginLimiter) RecordFailure(context.Context, string) (int64, error) { return 0, nil }

func (NoopLoginLimiter) Reset(context.Context, string) error { return nil }

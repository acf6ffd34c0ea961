package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	RedisLoginAttemptsKeyPrefix = "login_attempts:"

	// LoginAttemptWindow is how long failed attempts are remembered after the first one.
	LoginAttemptWindow = 15 * time.Minute
)

// incrWithExpiryScript increments the counter and starts its expiry on the
// first increment only, so the window does not slide with every failure.
var incrWithExpiryScript = redis.NewScript(`
	local attempts = redis.call('INCR', KEYS[1])
	if attempts == 1 then
		redis.call('EXPIRE', KEYS[1], ARGV[1])
	end
	return attempts
`)

// LoginThrottle counts failed sign-in attempts per email address.
type LoginThrottle interface {
	Attempts(ctx context.Context, email string) (int64, error)
	RecordFailure(ctx context.Context, email string) (int64, error)
	Reset(ctx context.Context, email string) error
}

type redisLoginThrottle struct {
	client *redis.Client
	window time.Duration
}

func NewRedisLoginThrottle(client *redis.Client) LoginThrottle {
	return &redisLoginThrottle{client: client, window: LoginAttemptWindow}
}

func loginAttemptsKey(email string) string {
	return RedisLoginAttemptsKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

func (t *redisLoginThrottle) Attempts(ctx context.Context, email string) (int64, error) {
	attempts, err := t.client.Get(ctx, loginAttemptsKey(email)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read login attempts: %w", err)
	}
	return attempts, nil
}

func (t *redisLoginThrottle) RecordFailure(ctx context.Context, email string) (int64, error) {
	attempts, err := incrWithExpiryScript.Run(ctx, t.client, []string{loginAttemptsKey(email)}, int(t.window.Seconds())).Int64()
	if err != nil {
		return 0, fmt.Errorf("record login failure: %w", err)
	}
	return attempts, nil
}

func (t *redisLoginThrottle) Reset(ctx context.Context, email string) error {
	if err := t.client.Del(ctx, loginAttemptsKey(email)).Err(); err != nil {
		return fmt.Errorf("reset login attempts: %w", err)
	}
	return nil
}

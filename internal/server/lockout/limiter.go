// Package lockout counts failed logins per username and refuses further
// attempts once a threshold is reached within a window.
package lockout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/redis/go-redis/v9"
)

// ErrLimiterUnavailable wraps backend failures of the limiter itself.
var ErrLimiterUnavailable = errors.New("lockout limiter unavailable")

// Limiter tracks failures for a key. Check returns common.ErrorLockedOut
// once MaxFailures failures were recorded within the window.
type Limiter interface {
	Check(ctx context.Context, key string) error
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// Config is shared by both implementations. MaxFailures <= 0 disables
// lockout.
type Config struct {
	MaxFailures int
	Window      time.Duration
}

func (c Config) enabled() bool {
	return c.MaxFailures > 0 && c.Window > 0
}

// RedisLimiter keeps counters in redis so several server replicas share them.
type RedisLimiter struct {
	redis  *redis.Client
	config Config
}

func NewRedisLimiter(client *redis.Client, cfg Config) *RedisLimiter {
	return &RedisLimiter{redis: client, config: cfg}
}

func redisKey(key string) string {
	return "gophauth:lockout:" + key
}

func (l *RedisLimiter) Check(ctx context.Context, key string) error {
	if !l.config.enabled() {
		return nil
	}

	count, err := l.redis.Get(ctx, redisKey(key)).Int()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return errors.Join(ErrLimiterUnavailable, err)
	}
	if count >= l.config.MaxFailures {
		return common.ErrorLockedOut
	}
	return nil
}

func (l *RedisLimiter) RecordFailure(ctx context.Context, key string) error {
	if !l.config.enabled() {
		return nil
	}

	k := redisKey(key)
	count, err := l.redis.Incr(ctx, k).Result()
	if err != nil {
		return errors.Join(ErrLimiterUnavailable, err)
	}
	if count == 1 {
		if err := l.redis.Expire(ctx, k, l.config.Window).Err(); err != nil {
			return errors.Join(ErrLimiterUnavailable, err)
		}
	}
	return nil
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	if err := l.redis.Del(ctx, redisKey(key)).Err(); err != nil {
		return errors.Join(ErrLimiterUnavailable, err)
	}
	return nil
}

type counter struct {
	failures int
	expires  time.Time
}

// MemoryLimiter is the single-process Limiter.
type MemoryLimiter struct {
	mu       sync.Mutex
	config   Config
	counters map[string]counter
	now      func() time.Time
}

func NewMemoryLimiter(cfg Config) *MemoryLimiter {
	return &MemoryLimiter{config: cfg, counters: make(map[string]counter), now: time.Now}
}

// current returns the live counter for key, dropping an expired one.
func (l *MemoryLimiter) current(key string) counter {
	c, ok := l.counters[key]
	if ok && !l.now().Before(c.expires) {
		delete(l.counters, key)
		return counter{}
	}
	return c
}

func (l *MemoryLimiter) Check(_ context.Context, key string) error {
	if !l.config.enabled() {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current(key).failures >= l.config.MaxFailures {
		return common.ErrorLockedOut
	}
	return nil
}

func (l *MemoryLimiter) RecordFailure(_ context.Context, key string) error {
	if !l.config.enabled() {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	c := l.current(key)
	if c.failures == 0 {
		c.expires = l.now().Add(l.config.Window)
	}
	c.failures++
	l.counters[key] = c
	return nil
}

func (l *MemoryLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.counters, key)
	return nil
}

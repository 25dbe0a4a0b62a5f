package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/checkitsa/app-checkit/internal/logging"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitDecision is the outcome of a rate limit check
type RateLimitDecision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter decides whether a caller identified by key may proceed
type RateLimiter interface {
	Allow(ctx context.Context, key string) RateLimitDecision
}

// Counter is the subset of the Redis client used by RedisRateLimiter
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// RedisRateLimiter implements a fixed-window limiter shared by all replicas.
// When Redis is unreachable the per-process fallback decides.
type RedisRateLimiter struct {
	counter  Counter
	limit    int
	window   time.Duration
	fallback *LocalRateLimiter
	logger   *logging.SafeLogger
	now      func() time.Time
}

// NewRedisRateLimiter allows limit requests per key in each window
func NewRedisRateLimiter(counter Counter, limit int, window time.Duration, logger *logging.SafeLogger) *RedisRateLimiter {
	return &RedisRateLimiter{
		counter:  counter,
		limit:    limit,
		window:   window,
		fallback: NewLocalRateLimiter(limit, window, logger),
		logger:   logger,
		now:      time.Now,
	}
}

// Allow increments the key's counter for the current window
func (l *RedisRateLimiter) Allow(ctx context.Context, key string) RateLimitDecision {
	now := l.now()
	windowStart := now.Truncate(l.window)
	windowLeft := windowStart.Add(l.window).Sub(now)
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, windowStart.Unix())

	count, err := l.counter.Incr(ctx, redisKey).Result()
	if err != nil {
		l.logger.Warn("rate limiter falling back to local buckets",
			zap.String("key", key),
			zap.Error(err))
		return l.fallback.Allow(key)
	}

	if count == 1 {
		if err := l.counter.Expire(ctx, redisKey, windowLeft).Err(); err != nil {
			l.logger.Warn("failed to set rate limit window expiry",
				zap.String("key", redisKey),
				zap.Error(err))
		}
	}

	if count > int64(l.limit) {
		l.logger.Debug("rate limiter rejected request",
			zap.String("key", key),
			zap.Int64("count", count),
			zap.Int("limit", l.limit))
		return RateLimitDecision{
			Allowed:    false,
			Limit:      l.limit,
			Remaining:  0,
			RetryAfter: l.retryAfter(ctx, redisKey, windowLeft),
		}
	}

	return RateLimitDecision{
		Allowed:   true,
		Limit:     l.limit,
		Remaining: l.limit - int(count),
	}
}

// retryAfter reads the window's remaining lifetime from Redis so replicas
// with skewed clocks agree. A key left without an expiry is re-armed, since
// it would otherwise block the caller for good.
func (l *RedisRateLimiter) retryAfter(ctx context.Context, redisKey string, local time.Duration) time.Duration {
	ttl, err := l.counter.TTL(ctx, redisKey).Result()
	switch {
	case err != nil:
		l.logger.Warn("failed to read rate limit window ttl",
			zap.String("key", redisKey),
			zap.Error(err))
		return local
	case ttl == -1:
		// go-redis reports a key without expiry as -1
		if err := l.counter.Expire(ctx, redisKey, local).Err(); err != nil {
			l.logger.Warn("failed to re-arm rate limit window expiry",
				zap.String("key", redisKey),
				zap.Error(err))
		}
		return local
	case ttl <= 0:
		return local
	}
	return ttl
}

// Fallback exposes the local limiter so callers can schedule its cleanup
func (l *RedisRateLimiter) Fallback() *LocalRateLimiter {
	return l.fallback
}

// TokenBucket implements a token bucket rate limiter
type TokenBucket struct {
	tokens     int
	maxTokens  int
	refillRate time.Duration
	lastRefill time.Time
	lastSeen   time.Time
	mutex      sync.Mutex
}

// NewTokenBucket creates a full bucket that gains one token per refillRate
func NewTokenBucket(maxTokens int, refillRate time.Duration, now time.Time) *TokenBucket {
	return &TokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: now,
		lastSeen:   now,
	}
}

// Take refills the bucket for the time elapsed and consumes one token if
// available. It returns whether a token was taken and the tokens left.
func (tb *TokenBucket) Take(now time.Time) (bool, int) {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	tb.lastSeen = now
	if elapsed := now.Sub(tb.lastRefill); elapsed >= tb.refillRate {
		tokensToAdd := int(elapsed / tb.refillRate)
		tb.tokens += tokensToAdd
		if tb.tokens >= tb.maxTokens {
			tb.tokens = tb.maxTokens
			tb.lastRefill = now
		} else {
			tb.lastRefill = tb.lastRefill.Add(time.Duration(tokensToAdd) * tb.refillRate)
		}
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true, tb.tokens
	}
	return false, 0
}

func (tb *TokenBucket) lastUsed() time.Time {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()
	return tb.lastSeen
}

// LocalRateLimiter keeps one token bucket per key in process memory
type LocalRateLimiter struct {
	buckets    sync.Map // map[string]*TokenBucket
	maxTokens  int
	refillRate time.Duration
	logger     *logging.SafeLogger
	now        func() time.Time
}

// NewLocalRateLimiter allows bursts of limit requests per key, refilled
// evenly over window
func NewLocalRateLimiter(limit int, window time.Duration, logger *logging.SafeLogger) *LocalRateLimiter {
	refillRate := window / time.Duration(limit)
	if refillRate <= 0 {
		refillRate = time.Nanosecond
	}
	return &LocalRateLimiter{
		maxTokens:  limit,
		refillRate: refillRate,
		logger:     logger,
		now:        time.Now,
	}
}

// Allow takes a token from the key's bucket
func (l *LocalRateLimiter) Allow(key string) RateLimitDecision {
	now := l.now()
	value, _ := l.buckets.LoadOrStore(key, NewTokenBucket(l.maxTokens, l.refillRate, now))
	bucket := value.(*TokenBucket)

	allowed, remaining := bucket.Take(now)
	if !allowed {
		return RateLimitDecision{
			Allowed:    false,
			Limit:      l.maxTokens,
			RetryAfter: l.refillRate,
		}
	}
	return RateLimitDecision{
		Allowed:   true,
		Limit:     l.maxTokens,
		Remaining: remaining,
	}
}

// CleanupOldEntries removes buckets untouched for longer than olderThan
func (l *LocalRateLimiter) CleanupOldEntries(olderThan time.Duration) int {
	cutoff := l.now().Add(-olderThan)
	removed := 0

	l.buckets.Range(func(key, value interface{}) bool {
		if value.(*TokenBucket).lastUsed().Before(cutoff) {
			l.buckets.Delete(key)
			removed++
		}
		return true
	})

	if removed > 0 {
		l.logger.Debug("cleaned up local rate limit buckets", zap.Int("removed", removed))
	}
	return removed
}

// Size returns the number of tracked keys
func (l *LocalRateLimiter) Size() int {
	count := 0
	l.buckets.Range(func(key, value interface{}) bool {
		count++
		return true
	})
	return count
}

// StartCleanup periodically drops idle buckets until ctx is done
func (l *LocalRateLimiter) StartCleanup(ctx context.Context, interval, olderThan time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.CleanupOldEntries(olderThan)
			}
		}
	}()
}

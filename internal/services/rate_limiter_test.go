package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/checkitsa/app-checkit/internal/logging"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCounter struct {
	mu        sync.Mutex
	counts    map[string]int64
	expiries  map[string]time.Duration
	deadlines map[string]time.Time
	incrErr   error
	ttlErr    error
	now       func() time.Time
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{
		counts:    map[string]int64{},
		expiries:  map[string]time.Duration{},
		deadlines: map[string]time.Time{},
		now:       time.Now,
	}
}

func (f *fakeCounter) Incr(ctx context.Context, key string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.incrErr != nil {
		return redis.NewIntResult(0, f.incrErr)
	}
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeCounter) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expiries[key] = expiration
	f.deadlines[key] = f.now().Add(expiration)
	return redis.NewBoolResult(true, nil)
}

// TTL mirrors go-redis: -2 for a missing key, -1 for a key without expiry
func (f *fakeCounter) TTL(ctx context.Context, key string) *redis.DurationCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ttlErr != nil {
		return redis.NewDurationResult(0, f.ttlErr)
	}
	if _, ok := f.counts[key]; !ok {
		return redis.NewDurationResult(-2, nil)
	}
	deadline, ok := f.deadlines[key]
	if !ok {
		return redis.NewDurationResult(-1, nil)
	}
	return redis.NewDurationResult(deadline.Sub(f.now()), nil)
}

func nopLogger() *logging.SafeLogger {
	return logging.NewSafeLogger(zap.NewNop())
}

func TestRedisRateLimiter_FixedWindow(t *testing.T) {
	counter := newFakeCounter()
	limiter := NewRedisRateLimiter(counter, 3, time.Minute, nopLogger())
	now := time.Date(2026, 10, 18, 12, 0, 15, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	counter.now = limiter.now
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d := limiter.Allow(ctx, "198.51.100.7")
		require.True(t, d.Allowed, "request %d", i+1)
		assert.Equal(t, 2-i, d.Remaining)
		assert.Equal(t, 3, d.Limit)
	}

	denied := limiter.Allow(ctx, "198.51.100.7")
	assert.False(t, denied.Allowed)
	assert.Equal(t, 0, denied.Remaining)
	assert.Equal(t, 45*time.Second, denied.RetryAfter)

	// Other keys have their own window
	assert.True(t, limiter.Allow(ctx, "203.0.113.9").Allowed)

	// Next window starts a new counter
	now = now.Add(time.Minute)
	assert.True(t, limiter.Allow(ctx, "198.51.100.7").Allowed)
}

func TestRedisRateLimiter_SetsExpiryOnFirstHit(t *testing.T) {
	counter := newFakeCounter()
	limiter := NewRedisRateLimiter(counter, 10, time.Minute, nopLogger())
	limiter.now = func() time.Time { return time.Unix(1_800_000_030, 0) }

	limiter.Allow(context.Background(), "k")
	limiter.Allow(context.Background(), "k")

	key := "ratelimit:k:1800000000"
	assert.Equal(t, int64(2), counter.counts[key])
	assert.Equal(t, 30*time.Second, counter.expiries[key], "key expires with its window")
	assert.Len(t, counter.expiries, 1)
}

func TestRedisRateLimiter_RetryAfterFromKeyTTL(t *testing.T) {
	counter := newFakeCounter()
	limiter := NewRedisRateLimiter(counter, 1, time.Minute, nopLogger())
	limiter.now = func() time.Time { return time.Unix(1_800_000_010, 0) }
	key := "ratelimit:k:1800000000"

	// Another replica opened the window with a clock running 5s behind
	counter.counts[key] = 1
	counter.deadlines[key] = time.Unix(1_800_000_065, 0)
	counter.now = limiter.now

	denied := limiter.Allow(context.Background(), "k")
	assert.False(t, denied.Allowed)
	assert.Equal(t, 55*time.Second, denied.RetryAfter)
}

func TestRedisRateLimiter_RearmsKeyWithoutExpiry(t *testing.T) {
	counter := newFakeCounter()
	limiter := NewRedisRateLimiter(counter, 1, time.Minute, nopLogger())
	limiter.now = func() time.Time { return time.Unix(1_800_000_020, 0) }
	counter.now = limiter.now
	key := "ratelimit:k:1800000000"

	// First hit's EXPIRE was lost
	counter.counts[key] = 1

	denied := limiter.Allow(context.Background(), "k")
	assert.False(t, denied.Allowed)
	assert.Equal(t, 40*time.Second, denied.RetryAfter)
	assert.Equal(t, 40*time.Second, counter.expiries[key])
}

func TestRedisRateLimiter_TTLFailureUsesLocalClock(t *testing.T) {
	counter := newFakeCounter()
	counter.ttlErr = errors.New("connection reset")
	limiter := NewRedisRateLimiter(counter, 1, time.Minute, nopLogger())
	limiter.now = func() time.Time { return time.Unix(1_800_000_050, 0) }
	counter.now = limiter.now

	limiter.Allow(context.Background(), "k")
	denied := limiter.Allow(context.Background(), "k")

	assert.False(t, denied.Allowed)
	assert.Equal(t, 10*time.Second, denied.RetryAfter)
}

func TestRedisRateLimiter_FallsBackWhenRedisFails(t *testing.T) {
	counter := newFakeCounter()
	counter.incrErr = errors.New("connection refused")
	limiter := NewRedisRateLimiter(counter, 2, time.Minute, nopLogger())
	now := time.Now()
	limiter.fallback.now = func() time.Time { return now }

	assert.True(t, limiter.Allow(context.Background(), "k").Allowed)
	assert.True(t, limiter.Allow(context.Background(), "k").Allowed)

	denied := limiter.Allow(context.Background(), "k")
	assert.False(t, denied.Allowed)
	assert.Equal(t, 30*time.Second, denied.RetryAfter)
	assert.Equal(t, 1, limiter.Fallback().Size())
}

func TestTokenBucket_Refill(t *testing.T) {
	start := time.Unix(0, 0)
	bucket := NewTokenBucket(2, time.Second, start)

	ok, remaining := bucket.Take(start)
	assert.True(t, ok)
	assert.Equal(t, 1, remaining)
	ok, _ = bucket.Take(start)
	assert.True(t, ok)
	ok, _ = bucket.Take(start)
	assert.False(t, ok)

	// 1.5s later one token is back and the half second carries over
	ok, _ = bucket.Take(start.Add(1500 * time.Millisecond))
	assert.True(t, ok)
	ok, _ = bucket.Take(start.Add(1900 * time.Millisecond))
	assert.False(t, ok)
	ok, _ = bucket.Take(start.Add(2 * time.Second))
	assert.True(t, ok)

	// Refill never exceeds capacity
	ok, remaining = bucket.Take(start.Add(time.Hour))
	assert.True(t, ok)
	assert.Equal(t, 1, remaining)
}

func TestLocalRateLimiter_LimitAboveWindowResolution(t *testing.T) {
	limiter := NewLocalRateLimiter(2_000_000_000, time.Second, nopLogger())
	now := time.Unix(0, 0)
	limiter.now = func() time.Time { return now }

	require.NotPanics(t, func() {
		assert.True(t, limiter.Allow("k").Allowed)
		now = now.Add(time.Millisecond)
		assert.True(t, limiter.Allow("k").Allowed)
	})
	assert.Equal(t, time.Nanosecond, limiter.refillRate)
}

func TestLocalRateLimiter_CleanupOldEntries(t *testing.T) {
	limiter := NewLocalRateLimiter(5, time.Minute, nopLogger())
	now := time.Now()
	limiter.now = func() time.Time { return now }

	limiter.Allow("old")
	now = now.Add(2 * time.Hour)
	limiter.Allow("fresh")

	removed := limiter.CleanupOldEntries(time.Hour)

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, limiter.Size())
}

func TestLocalRateLimiter_ConcurrentUse(t *testing.T) {
	limiter := NewLocalRateLimiter(100, time.Hour, nopLogger())

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Allow("shared").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowed)
}

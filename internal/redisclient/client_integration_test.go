//go:build integration

package redisclient

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func setupRedisForTest(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "Failed to start Redis container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)

	rdb := redis.NewClient(opts)
	t.Cleanup(func() { _ = rdb.Close() })
	return NewClient(rdb)
}

func TestClient_IncrExpireTTL(t *testing.T) {
	client := setupRedisForTest(t)
	ctx := context.Background()

	require.NoError(t, client.Ping(ctx).Err())

	n, err := client.Incr(ctx, "counter").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = client.Incr(ctx, "counter").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	ok, err := client.Expire(ctx, "counter", time.Minute).Result()
	require.NoError(t, err)
	assert.True(t, ok)

	ttl, err := client.TTL(ctx, "counter").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Second)
}

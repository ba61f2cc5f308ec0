package database

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/iskolardev/paygate/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *RedisClient {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisClientFromConn(client)
}

func TestNewRedisClient_ConnectionError(t *testing.T) {
	config := models.RedisConfig{
		Host:     "invalid-host",
		Port:     9999,
		Password: "",
		DB:       0,
		PoolSize: 10,
	}

	client, err := NewRedisClient(config)

	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestRedisClient_SetGet(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()

	err := client.Set(ctx, "tx:src_1", "pending", time.Minute)
	require.NoError(t, err)

	value, err := client.Get(ctx, "tx:src_1")
	require.NoError(t, err)
	assert.Equal(t, "pending", value)
}

func TestRedisClient_SetNX(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()

	set, err := client.SetNX(ctx, "evt:evt_1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, set)

	// Second attempt on the same key must not overwrite
	set, err = client.SetNX(ctx, "evt:evt_1", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, set)
}

func TestRedisClient_Delete(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "key", "value", 0))
	require.NoError(t, client.Delete(ctx, "key"))

	_, err := client.Get(ctx, "key")
	assert.ErrorIs(t, err, redis.Nil)
}

package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisStorage) {
	mr := miniredis.RunT(t)
	return mr, NewRedisStorage(NewRedisClient(mr.Addr(), ""))
}

func TestRedisStorageRoundTrip(t *testing.T) {
	mr, storage := setupTestRedis(t)
	require.NoError(t, storage.Ping(context.Background()))

	val, err := storage.Get("10.0.0.1")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, storage.Set("10.0.0.1", []byte("3"), time.Minute))
	val, err = storage.Get("10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), val)
	assert.True(t, mr.Exists(limiterKeyPrefix+"10.0.0.1"))

	mr.FastForward(2 * time.Minute)
	val, err = storage.Get("10.0.0.1")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestRedisStorageIgnoresEmptyKeys(t *testing.T) {
	mr, storage := setupTestRedis(t)

	require.NoError(t, storage.Set("", []byte("x"), 0))
	require.NoError(t, storage.Set("k", nil, 0))
	require.NoError(t, storage.Delete(""))
	assert.Empty(t, mr.Keys())
}

func TestRedisStorageResetKeepsForeignKeys(t *testing.T) {
	mr, storage := setupTestRedis(t)
	require.NoError(t, mr.Set("session:abc", "keep"))
	require.NoError(t, storage.Set("a", []byte("1"), 0))
	require.NoError(t, storage.Set("b", []byte("2"), 0))

	require.NoError(t, storage.Delete("a"))
	assert.False(t, mr.Exists(limiterKeyPrefix+"a"))

	require.NoError(t, storage.Reset())
	assert.Equal(t, []string{"session:abc"}, mr.Keys())
	require.NoError(t, storage.Close())
}

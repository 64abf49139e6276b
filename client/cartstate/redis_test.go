package cartstate

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStorage(t *testing.T) *RedisStorage {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStorage(client, "session-1", time.Hour)
}

func TestRedisStorageMissingKeyIsNotFound(t *testing.T) {
	storage := newRedisStorage(t)

	_, err := storage.Load(context.Background(), StorageKey)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := newRedisStorage(t)

	require.NoError(t, storage.Save(ctx, StorageKey, []byte(`[{"id":"a"}]`)))

	data, err := storage.Load(ctx, StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a"}]`, string(data))
}

func TestStoreOverRedis(t *testing.T) {
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	storage := NewRedisStorage(client, "session-2", time.Hour)

	s1, err := New(ctx, storage)
	require.NoError(t, err)
	require.NoError(t, s1.AddItem(ctx, frameLine(9, 0, 120, 2)))

	s2, err := New(ctx, storage)
	require.NoError(t, err)
	assert.Equal(t, 240.0, s2.TotalPrice())
}

func TestRedisStorageSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	a := NewRedisStorage(client, "session-a", time.Hour)
	b := NewRedisStorage(client, "session-b", time.Hour)

	require.NoError(t, a.Save(ctx, StorageKey, []byte(`[]`)))

	_, err := b.Load(ctx, StorageKey)
	assert.ErrorIs(t, err, ErrNotFound)
}

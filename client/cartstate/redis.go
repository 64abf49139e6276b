package cartstate

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cartstate:"

// RedisStorage persists cart blobs in Redis with a TTL, namespaced per
// session so every browser/device keeps its own cart.
type RedisStorage struct {
	client    *redis.Client
	sessionID string
	ttl       time.Duration
}

func NewRedisStorage(client *redis.Client, sessionID string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{
		client:    client,
		sessionID: sessionID,
		ttl:       ttl,
	}
}

func (r *RedisStorage) key(key string) string {
	return keyPrefix + r.sessionID + ":" + key
}

func (r *RedisStorage) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get cart blob: %w", err)
	}
	return data, nil
}

func (r *RedisStorage) Save(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, r.key(key), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart blob: %w", err)
	}
	return nil
}

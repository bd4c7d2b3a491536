package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/medisense-health/scheduler/internal/domain/providers"
	redisclient "github.com/medisense-health/scheduler/internal/infrastructure/clients/redis"
)

// RedisAdapter implements the BlobStore interface using Redis. The record
// archive has no expiry; it lives until removed.
type RedisAdapter struct {
	client *redisclient.Client
}

// NewRedisAdapter creates a new Redis blob store
func NewRedisAdapter(client *redisclient.Client) providers.BlobStore {
	return &RedisAdapter{client: client}
}

// Get retrieves a blob; missing keys return (nil, nil)
func (a *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := a.client.Client().Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blob from redis: %w", err)
	}
	return result, nil
}

// Set replaces the blob stored under key
func (a *RedisAdapter) Set(ctx context.Context, key string, value []byte) error {
	if err := a.client.Client().Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set blob in redis: %w", err)
	}
	return nil
}

// Remove deletes the blob stored under key
func (a *RedisAdapter) Remove(ctx context.Context, key string) error {
	if err := a.client.Client().Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to remove blob from redis: %w", err)
	}
	return nil
}

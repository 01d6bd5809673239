package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBlobStore persists blobs in Redis, surviving process restarts as
// long as the Redis instance does.
type RedisBlobStore struct {
	client *redis.Client
}

// NewRedisBlobStore connects to Redis at addr and verifies the
// connection with a ping.
func NewRedisBlobStore(addr string) (*RedisBlobStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &RedisBlobStore{client: client}, nil
}

// Write stores data under key with no expiry; the snapshot is only ever
// replaced, never aged out.
func (s *RedisBlobStore) Write(ctx context.Context, key string, data []byte) error {
	return s.client.Set(ctx, key, data, 0).Err()
}

// Read returns the blob stored under key, or ErrNotFound.
func (s *RedisBlobStore) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Close releases the underlying Redis connection.
func (s *RedisBlobStore) Close() error {
	return s.client.Close()
}

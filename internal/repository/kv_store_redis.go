package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisKVClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisKVStore stores values under prefix+key without expiration.
type RedisKVStore struct {
	client  redisKVClient
	prefix  string
	timeout time.Duration
}

func NewRedisKVStore(client *redis.Client, prefix string, timeout time.Duration) *RedisKVStore {
	if client == nil {
		return nil
	}
	return newRedisKVStore(client, prefix, timeout)
}

func newRedisKVStore(client redisKVClient, prefix string, timeout time.Duration) *RedisKVStore {
	if timeout <= 0 {
		timeout = defaultKVTimeout
	}
	return &RedisKVStore{
		client:  client,
		prefix:  prefix,
		timeout: timeout,
	}
}

func (s *RedisKVStore) Get(key string) (string, bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return "", false, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisKVStore) Set(key, value string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *RedisKVStore) Delete(key string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.Del(ctx, s.prefix+key).Err()
}

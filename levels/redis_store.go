// File: levels/redis_store.go
package levels

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/go-redis/redis/v8"
)

// DefaultRedisKey is the hash holding level text by name.
const DefaultRedisKey = "brickbreaker:levels"

// RedisStore keeps levels in a single Redis hash.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	names, err := s.client.HKeys(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

func (s *RedisStore) Load(ctx context.Context, name string) (string, error) {
	text, err := s.client.HGet(ctx, s.key, name).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to load level %s: %w", name, err)
	}
	return text, nil
}

func (s *RedisStore) Save(ctx context.Context, name, text string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := s.client.HSet(ctx, s.key, name, text).Err(); err != nil {
		return fmt.Errorf("failed to save level %s: %w", name, err)
	}
	return nil
}

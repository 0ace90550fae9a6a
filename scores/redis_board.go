// File: scores/redis_board.go
package scores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	leaderboardPrefix = "brickbreaker:scores:"
	entryPrefix       = "brickbreaker:entry:"

	// DefaultEntryTTL bounds how long entry details outlive their rank.
	DefaultEntryTTL = 30 * 24 * time.Hour
)

// RedisBoard ranks entries in one sorted set per level and keeps the entry
// details as JSON strings with a TTL.
type RedisBoard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisBoard(client *redis.Client, ttl time.Duration) *RedisBoard {
	if ttl <= 0 {
		ttl = DefaultEntryTTL
	}
	return &RedisBoard{client: client, ttl: ttl}
}

func leaderboardKey(level string) string { return leaderboardPrefix + level }
func entryKey(id string) string          { return entryPrefix + id }

// rankScore folds play time into the sorted set score so faster runs win
// ties. Seconds are capped below one point.
func rankScore(e Entry) float64 {
	return float64(e.Score) + 1/(2+e.Seconds)
}

func (b *RedisBoard) Submit(ctx context.Context, entry Entry) error {
	if err := entry.validate(); err != nil {
		return err
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode entry: %w", err)
	}

	id := entry.ID.String()
	pipe := b.client.TxPipeline()
	pipe.Set(ctx, entryKey(id), data, b.ttl)
	pipe.ZAdd(ctx, leaderboardKey(entry.Level), &redis.Z{
		Score:  rankScore(entry),
		Member: id,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to submit score: %w", err)
	}
	return nil
}

// Top returns up to n entries. Ranks whose details expired are pruned.
func (b *RedisBoard) Top(ctx context.Context, level string, n int) ([]Entry, error) {
	if n <= 0 {
		n = 10
	}
	key := leaderboardKey(level)
	ids, err := b.client.ZRevRange(ctx, key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		data, err := b.client.Get(ctx, entryKey(id)).Bytes()
		if errors.Is(err, redis.Nil) {
			b.client.ZRem(ctx, key, id)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read entry %s: %w", id, err)
		}
		var e Entry
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("failed to decode entry %s: %w", id, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

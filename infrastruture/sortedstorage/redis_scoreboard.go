package sortedstorage

import (
	"context"
	"fmt"

	"github.com/beka-birhanu/vinom-mdp/service/i"
	"github.com/redis/go-redis/v9"
)

var _ i.ScoreBoard = &RedisScoreBoard{}

// RedisScoreBoard keeps running score totals in a Redis sorted set.
type RedisScoreBoard struct {
	client *redis.Client
	key    string
}

// NewRedisScoreBoard creates a RedisScoreBoard over the sorted set at key.
func NewRedisScoreBoard(client *redis.Client, key string) *RedisScoreBoard {
	return &RedisScoreBoard{client: client, key: key}
}

// Record adds score to the member's total.
func (b *RedisScoreBoard) Record(ctx context.Context, member string, score float64) error {
	if err := b.client.ZIncrBy(ctx, b.key, score, member).Err(); err != nil {
		return fmt.Errorf("recording score of %s: %w", member, err)
	}
	return nil
}

// Top returns up to limit members with the highest totals, highest first.
func (b *RedisScoreBoard) Top(ctx context.Context, limit int64) ([]i.ScoreEntry, error) {
	if limit <= 0 {
		return nil, nil
	}

	zs, err := b.client.ZRevRangeWithScores(ctx, b.key, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading leaderboard: %w", err)
	}

	entries := make([]i.ScoreEntry, 0, len(zs))
	for _, z := range zs {
		entries = append(entries, i.ScoreEntry{Member: z.Member.(string), Score: z.Score})
	}
	return entries, nil
}

package sortedstorage

import (
	"context"
	"time"

	"github.com/beka-birhanu/vinom-mdp/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

var _ i.Locker = &RedisLocker{}

// RedisLocker hands out redsync mutexes backed by a single Redis client.
type RedisLocker struct {
	locker *redsync.Redsync
}

// NewRedisLocker creates a RedisLocker on client.
func NewRedisLocker(client *redis.Client) *RedisLocker {
	pool := goredis.NewPool(client)
	return &RedisLocker{locker: redsync.New(pool)}
}

// Acquire blocks until the named mutex is held or ctx is done. The lock expires after ttl even if
// it is never released.
func (l *RedisLocker) Acquire(ctx context.Context, name string, ttl time.Duration) (func(), error) {
	mutex := l.locker.NewMutex(name, redsync.WithExpiry(ttl))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() {
		_, _ = mutex.UnlockContext(context.Background())
	}, nil
}

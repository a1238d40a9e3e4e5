package i

import (
	"context"
	"time"
)

// ScoreEntry is one member of a leaderboard.
type ScoreEntry struct {
	Member string  `json:"member"`
	Score  float64 `json:"score"`
}

// ScoreBoard keeps members ranked by score.
type ScoreBoard interface {
	// Record adds score to the member's total.
	Record(ctx context.Context, member string, score float64) error

	// Top returns up to limit members with the highest totals, highest first.
	Top(ctx context.Context, limit int64) ([]ScoreEntry, error)
}

// Locker hands out named distributed locks.
type Locker interface {
	// Acquire blocks until the named lock is held or ctx is done. The returned func releases it.
	Acquire(ctx context.Context, name string, ttl time.Duration) (func(), error)
}

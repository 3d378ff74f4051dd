package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RankCounter hands out the order-of-discovery rank for each challenge.
// Ranks are strictly increasing and collision-free across processes because
// they come from a single atomic INCR per challenge.
type RankCounter interface {
	Next(ctx context.Context, challengeID string) (int, error)
}

type rankCounter struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRankCounter creates a Redis-backed rank counter. The TTL only reclaims
// counters of abandoned challenges; it is refreshed on every call so a live
// counter never expires mid-contest.
func NewRankCounter(client *redis.Client, ttl time.Duration) RankCounter {
	return &rankCounter{
		client: client,
		ttl:    ttl,
	}
}

func (c *rankCounter) key(challengeID string) string {
	return fmt.Sprintf("challenge:%s:solves", challengeID)
}

func (c *rankCounter) Next(ctx context.Context, challengeID string) (int, error) {
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, c.key(challengeID))
	pipe.Expire(ctx, c.key(challengeID), c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return int(incr.Val()), nil
}

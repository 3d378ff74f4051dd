package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"flagarena/internal/model"
)

// LeaderboardCache absorbs scoreboard read bursts. It is purely a latency
// optimization: standings are always re-derivable from solves, and the TTL
// bounds staleness if an invalidation is lost.
type LeaderboardCache interface {
	Get(ctx context.Context, contestID string, ignoreFreeze bool) ([]model.Standing, error)
	Set(ctx context.Context, contestID string, ignoreFreeze bool, standings []model.Standing) error
	// Invalidate drops both the frozen and live variants for the contest
	Invalidate(ctx context.Context, contestID string) error
}

type leaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLeaderboardCache creates a new leaderboard cache
func NewLeaderboardCache(client *redis.Client, ttl time.Duration) LeaderboardCache {
	return &leaderboardCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *leaderboardCache) key(contestID string, ignoreFreeze bool) string {
	variant := "frozen"
	if ignoreFreeze {
		variant = "live"
	}
	return fmt.Sprintf("contest:%s:standings:%s", contestID, variant)
}

func (c *leaderboardCache) Get(ctx context.Context, contestID string, ignoreFreeze bool) ([]model.Standing, error) {
	data, err := c.client.Get(ctx, c.key(contestID, ignoreFreeze)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var standings []model.Standing
	if err := json.Unmarshal([]byte(data), &standings); err != nil {
		return nil, err
	}
	return standings, nil
}

func (c *leaderboardCache) Set(ctx context.Context, contestID string, ignoreFreeze bool, standings []model.Standing) error {
	data, err := json.Marshal(standings)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(contestID, ignoreFreeze), data, c.ttl).Err()
}

func (c *leaderboardCache) Invalidate(ctx context.Context, contestID string) error {
	return c.client.Del(ctx, c.key(contestID, false), c.key(contestID, true)).Err()
}

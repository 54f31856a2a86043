package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"syntora/model"
)

// StatsCache keeps a short-lived copy of each user's gamification row in
// Redis and owns the per-user reset lock that serializes daily reset
// triggers across devices and instances.
type StatsCache struct {
	client   *redis.Client
	statsTTL time.Duration
	lockTTL  time.Duration
}

func NewStatsCache(redisURL string, statsTTL, lockTTL time.Duration) (*StatsCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &StatsCache{
		client:   client,
		statsTTL: statsTTL,
		lockTTL:  lockTTL,
	}, nil
}

// Client exposes the underlying connection so other Redis consumers (token
// blacklist) can share it.
func (sc *StatsCache) Client() *redis.Client {
	return sc.client
}

// cachedStats is the redis wire form of a stats row. The API-facing struct
// hides Version from JSON, but the cache must round-trip it: a warm read
// that came back with Version zero would never match the version-guarded
// update filter.
type cachedStats struct {
	Stats   model.GamingStats `json:"stats"`
	Version int64             `json:"version"`
}

func encodeStats(stats *model.GamingStats) ([]byte, error) {
	return json.Marshal(cachedStats{Stats: *stats, Version: stats.Version})
}

func decodeStats(data []byte) (*model.GamingStats, error) {
	var c cachedStats
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	stats := c.Stats
	stats.Version = c.Version
	return &stats, nil
}

func (sc *StatsCache) SetStats(ctx context.Context, stats *model.GamingStats) error {
	if stats == nil {
		return fmt.Errorf("cannot cache nil stats")
	}

	data, err := encodeStats(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	key := fmt.Sprintf("stats:%s", stats.UserID)
	if err := sc.client.Set(ctx, key, data, sc.statsTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache stats: %w", err)
	}
	return nil
}

// GetStats returns the cached row or nil on a miss.
func (sc *StatsCache) GetStats(ctx context.Context, userID string) (*model.GamingStats, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID cannot be empty")
	}

	key := fmt.Sprintf("stats:%s", userID)
	data, err := sc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stats from cache: %w", err)
	}

	stats, err := decodeStats(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
	}
	return stats, nil
}

func (sc *StatsCache) InvalidateStats(ctx context.Context, userID string) error {
	key := fmt.Sprintf("stats:%s", userID)
	return sc.client.Del(ctx, key).Err()
}

// AcquireResetLock takes the per-user daily reset lock. Returns false when
// another trigger already holds it; the lock expires on its own so a
// crashed holder cannot wedge the user's resets.
func (sc *StatsCache) AcquireResetLock(ctx context.Context, userID string) (bool, error) {
	key := fmt.Sprintf("reset_lock:%s", userID)
	return sc.client.SetNX(ctx, key, "1", sc.lockTTL).Result()
}

func (sc *StatsCache) ReleaseResetLock(ctx context.Context, userID string) error {
	key := fmt.Sprintf("reset_lock:%s", userID)
	return sc.client.Del(ctx, key).Err()
}

func (sc *StatsCache) Close() error {
	return sc.client.Close()
}

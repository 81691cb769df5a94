package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/opsgrade/obs-scorecard/internal/models"
)

// ScoreCache stores computed score breakdowns in Redis. Keys embed the
// snapshot revision (lastUpdated), so a saved snapshot naturally orphans all
// older entries; Invalidate reclaims them eagerly. Cache failures are soft:
// callers fall back to recomputation.
type ScoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewScoreCache creates a score cache backed by Redis
func NewScoreCache(address, password string, db int, ttl time.Duration) (*ScoreCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if ttl <= 0 {
		ttl = 1 * time.Hour
	}

	return &ScoreCache{client: client, ttl: ttl}, nil
}

func scoreKey(name string, revision int64, systemID string) string {
	return fmt.Sprintf("scorecard:%s:%d:%s", name, revision, systemID)
}

// Get returns the cached breakdown for a system at a snapshot revision
func (c *ScoreCache) Get(ctx context.Context, name string, revision int64, systemID string) (*models.ScoreBreakdown, bool) {
	data, err := c.client.Get(ctx, scoreKey(name, revision, systemID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Debug("score cache get failed", "error", err, "system_id", systemID)
		}
		return nil, false
	}

	var breakdown models.ScoreBreakdown
	if err := json.Unmarshal(data, &breakdown); err != nil {
		slog.Warn("score cache entry corrupt", "error", err, "system_id", systemID)
		return nil, false
	}

	return &breakdown, true
}

// Put stores the breakdown for a system at a snapshot revision
func (c *ScoreCache) Put(ctx context.Context, name string, revision int64, systemID string, breakdown *models.ScoreBreakdown) error {
	data, err := json.Marshal(breakdown)
	if err != nil {
		return fmt.Errorf("failed to marshal breakdown: %w", err)
	}

	if err := c.client.Set(ctx, scoreKey(name, revision, systemID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache breakdown: %w", err)
	}

	return nil
}

// Invalidate removes every cached breakdown for a deployment name
func (c *ScoreCache) Invalidate(ctx context.Context, name string) error {
	pattern := fmt.Sprintf("scorecard:%s:*", name)
	var cursor uint64
	var keysDeleted int

	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan keys: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("failed to delete some cached scores", "error", err)
			}
			keysDeleted += len(keys)
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	slog.Debug("score cache invalidated", "name", name, "keys_deleted", keysDeleted)
	return nil
}

// HealthCheck verifies Redis connectivity
func (c *ScoreCache) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *ScoreCache) Close() error {
	return c.client.Close()
}

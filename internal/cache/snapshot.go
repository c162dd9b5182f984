package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storepulse/storepulse/internal/model"
)

// Cache key prefixes and TTLs.
const (
	snapshotKeyPrefix = "snapshot:"

	// DefaultSnapshotTTL bounds how long a stale snapshot may be served
	// after the last successful recompute.
	DefaultSnapshotTTL = 24 * time.Hour
)

// Common cache errors.
var (
	ErrCacheMiss = errors.New("cache miss")
)

// StoreSnapshot caches a dashboard snapshot under its selection key.
func (c *Cache) StoreSnapshot(ctx context.Context, selection string, snap *model.DashboardSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := snapshotKeyPrefix + selection
	if err := c.client.Set(ctx, key, data, c.snapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache snapshot: %w", err)
	}

	return nil
}

// GetSnapshot retrieves a cached dashboard snapshot by selection key.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetSnapshot(ctx context.Context, selection string) (*model.DashboardSnapshot, error) {
	key := snapshotKeyPrefix + selection

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var snap model.DashboardSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	return &snap, nil
}

// DeleteSnapshot removes a cached snapshot.
func (c *Cache) DeleteSnapshot(ctx context.Context, selection string) error {
	if err := c.client.Del(ctx, snapshotKeyPrefix+selection).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot from cache: %w", err)
	}
	return nil
}

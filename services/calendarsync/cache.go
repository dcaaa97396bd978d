package calendarsync

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"slotwise/models"
)

// BusyCache caches fetched busy intervals per connection and window for a
// short TTL. Caching is an adapter-layer concern: the resolver itself never
// persists external busy intervals.
type BusyCache struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

func NewBusyCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *BusyCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &BusyCache{Client: client, TTL: ttl, Logger: logger}
}

func cacheKey(connectionID string, window models.TimeInterval) string {
	return fmt.Sprintf("sync:busy:%s:%d:%d", connectionID, window.Start.Unix(), window.End.Unix())
}

func (c *BusyCache) Get(ctx context.Context, connectionID string, window models.TimeInterval) ([]models.TimeInterval, bool) {
	data, err := c.Client.Get(ctx, cacheKey(connectionID, window)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.Logger.Debug("busy cache read failed", zap.String("connectionID", connectionID), zap.Error(err))
		}
		return nil, false
	}
	var intervals []models.TimeInterval
	if err := json.Unmarshal(data, &intervals); err != nil {
		return nil, false
	}
	return intervals, true
}

func (c *BusyCache) Set(ctx context.Context, connectionID string, window models.TimeInterval, intervals []models.TimeInterval) {
	data, err := json.Marshal(intervals)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, cacheKey(connectionID, window), data, c.TTL).Err(); err != nil {
		c.Logger.Debug("busy cache write failed", zap.String("connectionID", connectionID), zap.Error(err))
	}
}

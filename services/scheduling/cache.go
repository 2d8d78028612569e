package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"agendly/models"
	"agendly/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SlotCache caches slot-listing results in Redis. Keys carry a per-owner
// version that is bumped on every booking or cancellation, so stale entries
// are never served and expire on their own; the cache is never explicitly
// scanned or purged.
type SlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSlotCache wraps a Redis client with the given entry TTL.
func NewSlotCache(client *redis.Client, ttl time.Duration) *SlotCache {
	return &SlotCache{client: client, ttl: ttl}
}

func (c *SlotCache) versionKey(owner string) string {
	return "slotver:" + owner
}

// Key builds the cache key for one slot query, stamped with the owner's
// current schedule version. Any cache failure degrades to a miss.
func (c *SlotCache) Key(ctx context.Context, owner, date, professionalID, serviceID string, durationMin, stepMin int) string {
	version, err := c.client.Get(ctx, c.versionKey(owner)).Int64()
	if err != nil && err != redis.Nil {
		utils.GetLogger().Debug("slot cache version read failed", zap.Error(err))
	}
	if professionalID == "" {
		professionalID = "all"
	}
	if serviceID == "" {
		serviceID = "-"
	}
	return fmt.Sprintf("slots:%s:%s:%s:%s:%d:%d:v%d", owner, date, professionalID, serviceID, durationMin, stepMin, version)
}

// Get returns a cached result, treating every failure as a miss.
func (c *SlotCache) Get(ctx context.Context, key string) ([]models.ProfessionalSlots, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			utils.GetLogger().Debug("slot cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var results []models.ProfessionalSlots
	if err := json.Unmarshal(data, &results); err != nil {
		utils.GetLogger().Warn("slot cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return results, true
}

// Set stores a result under the given key. Failures are logged and ignored;
// the cache is an optimization, never a source of truth.
func (c *SlotCache) Set(ctx context.Context, key string, results []models.ProfessionalSlots) {
	data, err := json.Marshal(results)
	if err != nil {
		utils.GetLogger().Warn("slot cache marshal failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		utils.GetLogger().Debug("slot cache write failed", zap.Error(err))
	}
}

// Bump invalidates all cached slot listings of a tenant by advancing the
// owner's schedule version.
func (c *SlotCache) Bump(ctx context.Context, owner string) {
	if err := c.client.Incr(ctx, c.versionKey(owner)).Err(); err != nil {
		utils.GetLogger().Warn("slot cache version bump failed", zap.String("owner", owner), zap.Error(err))
	}
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/wims/backend/internal/domain/report"
)

const summaryKeyPrefix = "report:inventory-summary:"

// RedisSummaryCache caches inventory summaries in Redis with a TTL.
// A stale entry simply expires; transfer and stock writes do not
// invalidate it, which is acceptable for a short TTL.
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSummaryCache creates a new Redis-backed summary cache
func NewRedisSummaryCache(client *redis.Client, ttl time.Duration) *RedisSummaryCache {
	return &RedisSummaryCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached summary for the parameters, or nil on a miss
func (c *RedisSummaryCache) Get(ctx context.Context, warehouseID uuid.UUID, start, end time.Time) (*report.InventorySummary, error) {
	payload, err := c.client.Get(ctx, summaryKey(warehouseID, start, end)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read summary cache: %w", err)
	}

	var summary report.InventorySummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, fmt.Errorf("failed to decode cached summary: %w", err)
	}
	return &summary, nil
}

// Set stores a computed summary with the configured TTL
func (c *RedisSummaryCache) Set(ctx context.Context, summary *report.InventorySummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	key := summaryKey(summary.WarehouseID, summary.StartDate, summary.EndDate)
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write summary cache: %w", err)
	}
	return nil
}

func summaryKey(warehouseID uuid.UUID, start, end time.Time) string {
	return fmt.Sprintf("%s%s:%d:%d", summaryKeyPrefix, warehouseID, start.Unix(), end.Unix())
}

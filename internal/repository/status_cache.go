package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/sla-engine/internal/sla"
)

const statusCachePrefix = "sla:summary:"

// StatusCache keeps the latest computed SLA summaries in Redis so the
// read API can serve them without recomputation. Best effort: callers
// treat failures as cache misses.
type StatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatusCache builds the cache around an existing client.
func NewStatusCache(client *redis.Client, ttl time.Duration) *StatusCache {
	return &StatusCache{client: client, ttl: ttl}
}

// Put stores the summary for a ticket.
func (c *StatusCache) Put(ctx context.Context, ticketID string, summary sla.Summary) error {
	if c == nil || c.client == nil {
		return nil
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statusCachePrefix+ticketID, payload, c.ttl).Err()
}

// Get returns the cached summary, or nil on a miss.
func (c *StatusCache) Get(ctx context.Context, ticketID string) (*sla.Summary, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	payload, err := c.client.Get(ctx, statusCachePrefix+ticketID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var summary sla.Summary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

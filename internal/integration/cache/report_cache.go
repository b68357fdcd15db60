// Package cache implements the report cache on Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/homeledger/backend/internal/application/adapter"
)

const (
	defaultReportTTL = 10 * time.Minute
	keyPrefix        = "ledger:flow:"
)

// redisReportCache implements the adapter.ReportCache interface.
type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisReportCache creates a report cache backed by Redis. A non-positive ttl falls back to 10 minutes.
func NewRedisReportCache(client *redis.Client, ttl time.Duration) adapter.ReportCache {
	if ttl <= 0 {
		ttl = defaultReportTTL
	}
	return &redisReportCache{
		client: client,
		ttl:    ttl,
	}
}

func annualReportKey(flowID uuid.UUID) string {
	return keyPrefix + flowID.String() + ":annual"
}

// GetAnnualReport returns the cached payload, or nil on a miss.
func (c *redisReportCache) GetAnnualReport(ctx context.Context, flowID uuid.UUID) ([]byte, error) {
	payload, err := c.client.Get(ctx, annualReportKey(flowID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read annual report: %w", err)
	}
	return payload, nil
}

// SetAnnualReport stores the payload with the configured TTL.
func (c *redisReportCache) SetAnnualReport(ctx context.Context, flowID uuid.UUID, payload []byte) error {
	if err := c.client.Set(ctx, annualReportKey(flowID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store annual report: %w", err)
	}
	return nil
}

// InvalidateFlow drops the cached reports of a flow.
func (c *redisReportCache) InvalidateFlow(ctx context.Context, flowID uuid.UUID) error {
	if err := c.client.Del(ctx, annualReportKey(flowID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate flow reports: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (c *redisReportCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// noopReportCache never stores anything. It is used when Redis is unavailable.
type noopReportCache struct{}

// NewNoopReportCache returns a cache that always misses.
func NewNoopReportCache() adapter.ReportCache {
	return noopReportCache{}
}

func (noopReportCache) GetAnnualReport(context.Context, uuid.UUID) ([]byte, error) { return nil, nil }

func (noopReportCache) SetAnnualReport(context.Context, uuid.UUID, []byte) error { return nil }

func (noopReportCache) InvalidateFlow(context.Context, uuid.UUID) error { return nil }

func (noopReportCache) Ping(context.Context) error { return errors.New("report cache disabled") }

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *redisReportCache) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, NewRedisReportCache(client, ttl).(*redisReportCache)
}

func TestRedisReportCache(t *testing.T) {
	ctx := context.Background()
	flowID := uuid.New()

	t.Run("miss returns nil payload", func(t *testing.T) {
		_, cache := newTestCache(t, time.Minute)

		payload, err := cache.GetAnnualReport(ctx, flowID)

		require.NoError(t, err)
		assert.Nil(t, payload)
	})

	t.Run("stored payload is returned", func(t *testing.T) {
		_, cache := newTestCache(t, time.Minute)

		require.NoError(t, cache.SetAnnualReport(ctx, flowID, []byte(`{"year":2025}`)))
		payload, err := cache.GetAnnualReport(ctx, flowID)

		require.NoError(t, err)
		assert.JSONEq(t, `{"year":2025}`, string(payload))
	})

	t.Run("payload expires after ttl", func(t *testing.T) {
		server, cache := newTestCache(t, time.Minute)

		require.NoError(t, cache.SetAnnualReport(ctx, flowID, []byte(`{}`)))
		server.FastForward(2 * time.Minute)
		payload, err := cache.GetAnnualReport(ctx, flowID)

		require.NoError(t, err)
		assert.Nil(t, payload)
	})

	t.Run("invalidate drops only the given flow", func(t *testing.T) {
		_, cache := newTestCache(t, time.Minute)
		other := uuid.New()

		require.NoError(t, cache.SetAnnualReport(ctx, flowID, []byte(`{}`)))
		require.NoError(t, cache.SetAnnualReport(ctx, other, []byte(`{}`)))
		require.NoError(t, cache.InvalidateFlow(ctx, flowID))

		payload, err := cache.GetAnnualReport(ctx, flowID)
		require.NoError(t, err)
		assert.Nil(t, payload)

		payload, err = cache.GetAnnualReport(ctx, other)
		require.NoError(t, err)
		assert.NotNil(t, payload)
	})

	t.Run("non positive ttl uses default", func(t *testing.T) {
		_, cache := newTestCache(t, 0)
		assert.Equal(t, defaultReportTTL, cache.ttl)
	})

	t.Run("ping fails once the server is gone", func(t *testing.T) {
		server, cache := newTestCache(t, time.Minute)
		require.NoError(t, cache.Ping(ctx))

		server.Close()

		assert.Error(t, cache.Ping(ctx))
	})
}

func TestNoopReportCache(t *testing.T) {
	ctx := context.Background()
	cache := NewNoopReportCache()

	require.NoError(t, cache.SetAnnualReport(ctx, uuid.New(), []byte(`{}`)))
	payload, err := cache.GetAnnualReport(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, payload)
	assert.NoError(t, cache.InvalidateFlow(ctx, uuid.New()))
	assert.Error(t, cache.Ping(ctx))
}

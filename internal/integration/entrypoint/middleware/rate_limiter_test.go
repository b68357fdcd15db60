package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func postLogin(router *gin.Engine, ip string) int {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = ip + ":1234"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter(t *testing.T) {
	t.Run("blocks after max attempts per ip", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(2, time.Minute)
		router := newLimitedRouter(rl)

		assert.Equal(t, http.StatusOK, postLogin(router, "10.0.0.1"))
		assert.Equal(t, http.StatusOK, postLogin(router, "10.0.0.1"))
		assert.Equal(t, http.StatusTooManyRequests, postLogin(router, "10.0.0.1"))
		assert.Equal(t, http.StatusOK, postLogin(router, "10.0.0.2"))
	})

	t.Run("window expiry resets attempts", func(t *testing.T) {
		now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		rl := NewRateLimiterWithConfig(1, time.Minute)
		rl.now = func() time.Time { return now }
		router := newLimitedRouter(rl)

		assert.Equal(t, http.StatusOK, postLogin(router, "10.0.0.1"))
		assert.Equal(t, http.StatusTooManyRequests, postLogin(router, "10.0.0.1"))

		now = now.Add(2 * time.Minute)
		assert.Equal(t, http.StatusOK, postLogin(router, "10.0.0.1"))
	})

	t.Run("zero limit disables limiting", func(t *testing.T) {
		router := newLimitedRouter(NewRateLimiterWithConfig(0, time.Minute))
		for i := 0; i < 10; i++ {
			assert.Equal(t, http.StatusOK, postLogin(router, "10.0.0.1"))
		}
	})
}

func TestRateLimiter_PurgesExpiredEntries(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiterWithConfig(1, time.Minute)
	rl.now = func() time.Time { return now }

	for i := 0; i < purgeThreshold; i++ {
		assert.True(t, rl.allow(fmt.Sprintf("10.0.%d.%d", i/256, i%256)))
	}
	assert.Len(t, rl.entries, purgeThreshold)

	now = now.Add(2 * time.Minute)
	assert.True(t, rl.allow("192.168.0.1"))
	assert.Len(t, rl.entries, 1)
}

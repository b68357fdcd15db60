package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homeledger/backend/internal/application/adapter"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker func(ctx context.Context) bool
	cache           adapter.ReportCache
	clock           adapter.Clock
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(dbHealthChecker func(ctx context.Context) bool, cache adapter.ReportCache, clock adapter.Clock) *HealthController {
	return &HealthController{
		dbHealthChecker: dbHealthChecker,
		cache:           cache,
		clock:           clock,
	}
}

// Check handles GET /health requests.
// The database is required; an unreachable cache only degrades the status.
func (h *HealthController) Check(c *gin.Context) {
	ctx := c.Request.Context()

	dbStatus := "disconnected"
	if h.dbHealthChecker != nil && h.dbHealthChecker(ctx) {
		dbStatus = "connected"
	}

	cacheStatus := "disconnected"
	if h.cache != nil && h.cache.Ping(ctx) == nil {
		cacheStatus = "connected"
	}

	status, code := "ok", http.StatusOK
	switch {
	case dbStatus != "connected":
		status, code = "unavailable", http.StatusServiceUnavailable
	case cacheStatus != "connected":
		status = "degraded"
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Database:  dbStatus,
		Cache:     cacheStatus,
		Timestamp: h.clock.Now().UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}

package ledger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/homeledger/backend/internal/application/adapter"
)

// InvalidateReports drops the cached reports of a flow. Cache failures are logged, never returned.
func InvalidateReports(ctx context.Context, cache adapter.ReportCache, flowID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateFlow(ctx, flowID); err != nil {
		slog.WarnContext(ctx, "Failed to invalidate report cache", "flow_id", flowID, "error", err)
	}
}

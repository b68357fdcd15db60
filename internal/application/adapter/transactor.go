package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Transactor runs a function inside one database transaction.
// Repositories called with the ctx passed to fn take part in that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ReportCache stores serialized annual reports per flow.
type ReportCache interface {
	// GetAnnualReport returns the cached payload, or nil when there is none.
	GetAnnualReport(ctx context.Context, flowID uuid.UUID) ([]byte, error)

	// SetAnnualReport stores the payload for the configured TTL.
	SetAnnualReport(ctx context.Context, flowID uuid.UUID, payload []byte) error

	// InvalidateFlow drops every cached report of a flow.
	InvalidateFlow(ctx context.Context, flowID uuid.UUID) error

	// Ping reports whether the cache backend is reachable.
	Ping(ctx context.Context) error
}

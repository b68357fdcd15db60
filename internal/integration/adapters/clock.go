package adapters

import (
	"time"

	"github.com/homeledger/backend/internal/application/adapter"
)

type systemClock struct{}

// NewSystemClock returns a clock reading the wall time in UTC.
func NewSystemClock() adapter.Clock {
	return systemClock{}
}

// Now returns the current UTC time.
func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns the same instant. Tests advance it by assigning Time.
type FixedClock struct {
	Time time.Time
}

// Now returns the fixed instant.
func (c *FixedClock) Now() time.Time {
	return c.Time
}

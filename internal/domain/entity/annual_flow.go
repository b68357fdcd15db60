// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/homeledger/backend/internal/domain/valueobject"
)

// PeriodState is the lifecycle state of a flow or a monthly book.
type PeriodState string

const (
	PeriodOpen   PeriodState = "open"
	PeriodClosed PeriodState = "closed"
)

// Valid year range for an annual flow.
const (
	MinFlowYear = 2000
	MaxFlowYear = 2100
)

// AnnualFlow is the ledger of one calendar year. It owns exactly twelve monthly books.
type AnnualFlow struct {
	ID        uuid.UUID
	Year      int
	State     PeriodState
	CreatedAt time.Time
	Books     []*MonthlyIncomeBook
}

// NewAnnualFlow creates an open flow together with its twelve open books.
func NewAnnualFlow(year int, now time.Time) *AnnualFlow {
	flow := &AnnualFlow{
		ID:        uuid.New(),
		Year:      year,
		State:     PeriodOpen,
		CreatedAt: now.UTC(),
		Books:     make([]*MonthlyIncomeBook, 0, valueobject.MonthsPerYear),
	}
	for month := 1; month <= valueobject.MonthsPerYear; month++ {
		flow.Books = append(flow.Books, NewMonthlyIncomeBook(flow.ID, month))
	}
	return flow
}

// IsValidFlowYear reports whether year is inside the supported range.
func IsValidFlowYear(year int) bool {
	return year >= MinFlowYear && year <= MaxFlowYear
}

// IsClosed reports whether the flow has been closed.
func (f *AnnualFlow) IsClosed() bool {
	return f.State == PeriodClosed
}

// IsCurrentYear reports whether the flow covers the year of now.
func (f *AnnualFlow) IsCurrentYear(now time.Time) bool {
	return f.Year == now.Year()
}

package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/homeledger/backend/internal/domain/valueobject"
)

// MonthlyIncomeBook groups the incomes of one month of a flow.
type MonthlyIncomeBook struct {
	ID       uuid.UUID
	FlowID   uuid.UUID
	Month    int
	State    PeriodState
	ClosedAt *time.Time
}

// NewMonthlyIncomeBook creates an open book for the given month.
func NewMonthlyIncomeBook(flowID uuid.UUID, month int) *MonthlyIncomeBook {
	return &MonthlyIncomeBook{
		ID:     uuid.New(),
		FlowID: flowID,
		Month:  month,
		State:  PeriodOpen,
	}
}

// IsClosed reports whether the book has been closed.
func (b *MonthlyIncomeBook) IsClosed() bool {
	return b.State == PeriodClosed
}

// MonthName returns the calendar name of the book month.
func (b *MonthlyIncomeBook) MonthName() string {
	return valueobject.MonthName(b.Month)
}

// IsCurrent reports whether the book is the month of now within the given flow year.
func (b *MonthlyIncomeBook) IsCurrent(year int, now time.Time) bool {
	return year == now.Year() && b.Month == int(now.Month())
}

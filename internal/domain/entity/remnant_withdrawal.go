package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WithdrawalState is the application state of a remnant withdrawal.
type WithdrawalState string

const (
	WithdrawalPending WithdrawalState = "pending"
	WithdrawalApplied WithdrawalState = "applied"
)

// RemnantWithdrawal moves part of the accumulated remnant of a flow into an income of a target month.
type RemnantWithdrawal struct {
	ID          uuid.UUID
	FlowID      uuid.UUID
	Amount      decimal.Decimal
	Description string
	TargetMonth int
	State       WithdrawalState
	WithdrawnAt time.Time
	AppliedAt   *time.Time
}

// NewRemnantWithdrawal creates a pending withdrawal.
func NewRemnantWithdrawal(flowID uuid.UUID, amount decimal.Decimal, description string, targetMonth int, now time.Time) *RemnantWithdrawal {
	return &RemnantWithdrawal{
		ID:          uuid.New(),
		FlowID:      flowID,
		Amount:      amount,
		Description: strings.TrimSpace(description),
		TargetMonth: targetMonth,
		State:       WithdrawalPending,
		WithdrawnAt: now.UTC(),
	}
}

// IsApplied reports whether the side effects of the withdrawal have been written.
func (w *RemnantWithdrawal) IsApplied() bool {
	return w.State == WithdrawalApplied
}

// Income builds the income the withdrawal deposits into the target book.
func (w *RemnantWithdrawal) Income(bookID uuid.UUID, now time.Time) *Income {
	withdrawalID := w.ID
	income := NewIncome(bookID, "Income from remnants: "+w.Description, w.Amount, now)
	income.WithdrawalID = &withdrawalID
	return income
}

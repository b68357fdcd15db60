package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homeledger/backend/internal/domain/valueobject"
)

// RemnantKind tells how a remnant entry was produced.
type RemnantKind string

const (
	// RemnantCarryForward is the positive balance moved out of a book when it closes.
	RemnantCarryForward RemnantKind = "carry_forward"
	// RemnantKindWithdrawal is the negative entry written by a remnant withdrawal.
	RemnantKindWithdrawal RemnantKind = "withdrawal"
)

// Remnant is a carry-forward balance entry attached to a book.
type Remnant struct {
	ID            uuid.UUID
	BookID        uuid.UUID
	Amount        decimal.Decimal
	Kind          RemnantKind
	Description   string
	WithdrawalID  *uuid.UUID
	TransferredAt time.Time
}

// NewCarryForwardRemnant creates the remnant produced by closing a month with a positive balance.
func NewCarryForwardRemnant(bookID uuid.UUID, amount decimal.Decimal, month valueobject.MonthKey, now time.Time) *Remnant {
	return &Remnant{
		ID:            uuid.New(),
		BookID:        bookID,
		Amount:        amount,
		Kind:          RemnantCarryForward,
		Description:   fmt.Sprintf("Remnant of %s", month),
		TransferredAt: now.UTC(),
	}
}

// NewWithdrawalRemnant creates the negative remnant entry that records a withdrawal.
func NewWithdrawalRemnant(bookID uuid.UUID, w *RemnantWithdrawal, now time.Time) *Remnant {
	withdrawalID := w.ID
	return &Remnant{
		ID:            uuid.New(),
		BookID:        bookID,
		Amount:        w.Amount.Neg(),
		Kind:          RemnantKindWithdrawal,
		Description:   "Remnant withdrawal: " + w.Description,
		WithdrawalID:  &withdrawalID,
		TransferredAt: now.UTC(),
	}
}

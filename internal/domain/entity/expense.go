package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a spend charged against one income.
type Expense struct {
	ID          uuid.UUID
	IncomeID    uuid.UUID
	CategoryID  uuid.UUID
	Description string
	Amount      decimal.Decimal
	CreatedAt   time.Time
}

// NewExpense creates a new Expense entity.
func NewExpense(incomeID, categoryID uuid.UUID, description string, amount decimal.Decimal, now time.Time) *Expense {
	return &Expense{
		ID:          uuid.New(),
		IncomeID:    incomeID,
		CategoryID:  categoryID,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		CreatedAt:   now.UTC(),
	}
}

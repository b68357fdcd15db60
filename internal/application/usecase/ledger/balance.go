// Package ledger contains the balance calculator and helpers shared by the ledger use cases.
package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/domain/entity"
)

// BalanceCalculator derives balances from stored incomes, expenses and remnants.
// Nothing is cached: every call reads the current rows, inside the caller's transaction when there is one.
type BalanceCalculator struct {
	queries adapter.LedgerQueryRepository
}

// NewBalanceCalculator creates a new BalanceCalculator instance.
func NewBalanceCalculator(queries adapter.LedgerQueryRepository) *BalanceCalculator {
	return &BalanceCalculator{
		queries: queries,
	}
}

// IncomeBalance returns the income amount minus the sum of its expenses.
func (c *BalanceCalculator) IncomeBalance(ctx context.Context, income *entity.Income) (decimal.Decimal, error) {
	spent, err := c.queries.ExpenseTotalByIncome(ctx, income.ID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum income expenses: %w", err)
	}
	return income.Amount.Sub(spent), nil
}

// BookTotals returns the income and expense sums of a book.
func (c *BalanceCalculator) BookTotals(ctx context.Context, bookID uuid.UUID) (adapter.PeriodTotals, error) {
	totals, err := c.queries.BookTotals(ctx, bookID)
	if err != nil {
		return adapter.PeriodTotals{}, fmt.Errorf("failed to sum book totals: %w", err)
	}
	return totals, nil
}

// BookBalance returns the incomes of a book minus the expenses charged to them.
func (c *BalanceCalculator) BookBalance(ctx context.Context, bookID uuid.UUID) (decimal.Decimal, error) {
	totals, err := c.BookTotals(ctx, bookID)
	if err != nil {
		return decimal.Zero, err
	}
	return totals.Balance(), nil
}

// FlowTotals returns the income and expense sums of the whole year.
func (c *BalanceCalculator) FlowTotals(ctx context.Context, flowID uuid.UUID) (adapter.PeriodTotals, []adapter.MonthlyTotals, error) {
	months, err := c.queries.MonthlyTotalsByFlow(ctx, flowID)
	if err != nil {
		return adapter.PeriodTotals{}, nil, fmt.Errorf("failed to sum monthly totals: %w", err)
	}

	year := adapter.PeriodTotals{Income: decimal.Zero, Expenses: decimal.Zero}
	for _, month := range months {
		year.Income = year.Income.Add(month.Income)
		year.Expenses = year.Expenses.Add(month.Expenses)
	}
	return year, months, nil
}

// AccumulatedRemnant returns the sum of every remnant entry of a flow, the balance available for withdrawal.
func (c *BalanceCalculator) AccumulatedRemnant(ctx context.Context, flowID uuid.UUID) (decimal.Decimal, error) {
	total, err := c.queries.RemnantTotalByFlow(ctx, flowID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum remnants: %w", err)
	}
	return total, nil
}

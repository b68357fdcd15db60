package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PeriodTotals holds the income and expense sums of a book or a flow.
type PeriodTotals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// Balance returns income minus expenses.
func (t PeriodTotals) Balance() decimal.Decimal {
	return t.Income.Sub(t.Expenses)
}

// IncomeExpenseTotal holds the expense sum and count charged to one income.
type IncomeExpenseTotal struct {
	Total decimal.Decimal
	Count int64
}

// MonthlyTotals holds the sums of one month of a flow.
type MonthlyTotals struct {
	BookID uuid.UUID
	Month  int
	PeriodTotals
}

// CategoryTotal holds the expense sum of one category.
type CategoryTotal struct {
	CategoryID   uuid.UUID
	CategoryName string
	Total        decimal.Decimal
}

// MonthCategoryTotal is a category total within one month of a flow.
type MonthCategoryTotal struct {
	Month int
	CategoryTotal
}

// IncomeCategoryTotal is a category total within one income.
type IncomeCategoryTotal struct {
	IncomeID uuid.UUID
	CategoryTotal
}

// LedgerQueryRepository defines the aggregate reads behind balances and reports.
type LedgerQueryRepository interface {
	// ExpenseTotalByIncome sums the expenses charged to an income.
	ExpenseTotalByIncome(ctx context.Context, incomeID uuid.UUID) (decimal.Decimal, error)

	// ExpenseTotalsByIncomes sums expenses per income for the given incomes.
	ExpenseTotalsByIncomes(ctx context.Context, incomeIDs []uuid.UUID) (map[uuid.UUID]IncomeExpenseTotal, error)

	// BookTotals sums incomes and their expenses within a book.
	BookTotals(ctx context.Context, bookID uuid.UUID) (PeriodTotals, error)

	// MonthlyTotalsByFlow sums incomes and expenses for each book of a flow, ordered by month.
	MonthlyTotalsByFlow(ctx context.Context, flowID uuid.UUID) ([]MonthlyTotals, error)

	// RemnantTotalByFlow sums every remnant entry of a flow, positive and negative.
	RemnantTotalByFlow(ctx context.Context, flowID uuid.UUID) (decimal.Decimal, error)

	// MonthCategoryTotals sums the expenses of a flow per month and category.
	MonthCategoryTotals(ctx context.Context, flowID uuid.UUID) ([]MonthCategoryTotal, error)

	// IncomeCategoryTotals sums the expenses of a flow per income and category.
	IncomeCategoryTotals(ctx context.Context, flowID uuid.UUID) ([]IncomeCategoryTotal, error)
}

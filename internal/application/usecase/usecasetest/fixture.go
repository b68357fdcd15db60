// Package usecasetest wires the ledger repositories on an in-memory database for use case tests.
package usecasetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
	"github.com/homeledger/backend/internal/domain/entity"
	"github.com/homeledger/backend/internal/domain/valueobject"
	"github.com/homeledger/backend/internal/infra/db/dbtest"
	"github.com/homeledger/backend/internal/integration/adapters"
	"github.com/homeledger/backend/internal/integration/cache"
	"github.com/homeledger/backend/internal/integration/persistence"
)

// Env holds repositories sharing one test database, a fixed clock set to 15 March 2025 and a no-op cache.
type Env struct {
	Flows       adapter.FlowRepository
	Books       adapter.BookRepository
	Incomes     adapter.IncomeRepository
	Expenses    adapter.ExpenseRepository
	Categories  adapter.CategoryRepository
	Remnants    adapter.RemnantRepository
	Withdrawals adapter.WithdrawalRepository
	Budgets     adapter.BudgetRepository
	Queries     adapter.LedgerQueryRepository
	Transactor  adapter.Transactor
	Balances    *ledger.BalanceCalculator
	Clock       *adapters.FixedClock
	Cache       adapter.ReportCache
}

// New creates an Env on a fresh database.
func New(t *testing.T) *Env {
	t.Helper()

	db := dbtest.Open(t)
	queries := persistence.NewLedgerQueryRepository(db)
	return &Env{
		Flows:       persistence.NewFlowRepository(db),
		Books:       persistence.NewBookRepository(db),
		Incomes:     persistence.NewIncomeRepository(db),
		Expenses:    persistence.NewExpenseRepository(db),
		Categories:  persistence.NewCategoryRepository(db),
		Remnants:    persistence.NewRemnantRepository(db),
		Withdrawals: persistence.NewWithdrawalRepository(db),
		Budgets:     persistence.NewBudgetRepository(db),
		Queries:     queries,
		Transactor:  persistence.NewTransactor(db),
		Balances:    ledger.NewBalanceCalculator(queries),
		Clock:       &adapters.FixedClock{Time: time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)},
		Cache:       cache.NewNoopReportCache(),
	}
}

// Amount parses a decimal literal and fails the test on error.
func Amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// Flow stores a flow of the given year with its twelve open books.
func (e *Env) Flow(t *testing.T, year int) *entity.AnnualFlow {
	t.Helper()

	flow := entity.NewAnnualFlow(year, e.Clock.Now())
	require.NoError(t, e.Flows.Create(context.Background(), flow))
	return flow
}

// Book returns the book of a month of the flow.
func (e *Env) Book(t *testing.T, flowID uuid.UUID, month int) *entity.MonthlyIncomeBook {
	t.Helper()

	book, err := e.Books.FindByFlowAndMonth(context.Background(), flowID, month)
	require.NoError(t, err)
	return book
}

// Income stores an income in a book.
func (e *Env) Income(t *testing.T, bookID uuid.UUID, description, amount string) *entity.Income {
	t.Helper()

	income := entity.NewIncome(bookID, description, Amount(t, amount), e.Clock.Now())
	require.NoError(t, e.Incomes.Create(context.Background(), income))
	return income
}

// Category stores an expense category.
func (e *Env) Category(t *testing.T, name string) *entity.ExpenseCategory {
	t.Helper()

	category := entity.NewExpenseCategory(name, "", e.Clock.Now())
	require.NoError(t, e.Categories.Create(context.Background(), category))
	return category
}

// Expense stores an expense against an income without any balance check.
func (e *Env) Expense(t *testing.T, incomeID, categoryID uuid.UUID, description, amount string) *entity.Expense {
	t.Helper()

	expense := entity.NewExpense(incomeID, categoryID, description, Amount(t, amount), e.Clock.Now())
	require.NoError(t, e.Expenses.Create(context.Background(), expense))
	return expense
}

// CarryForward stores the remnant a closed month would have produced.
func (e *Env) CarryForward(t *testing.T, flow *entity.AnnualFlow, month int, amount string) *entity.Remnant {
	t.Helper()

	book := e.Book(t, flow.ID, month)
	remnant := entity.NewCarryForwardRemnant(book.ID, Amount(t, amount), valueobject.MonthKey{Year: flow.Year, Month: month}, e.Clock.Now())
	require.NoError(t, e.Remnants.Create(context.Background(), remnant))
	return remnant
}

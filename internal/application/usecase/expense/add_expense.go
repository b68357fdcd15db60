// Package expense contains expense use cases, including the balance admission check.
package expense

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
	"github.com/homeledger/backend/internal/domain/entity"
	domainerror "github.com/homeledger/backend/internal/domain/error"
	"github.com/homeledger/backend/internal/domain/valueobject"
)

// AddExpenseInput represents the input for charging an expense to an income.
type AddExpenseInput struct {
	IncomeID    uuid.UUID
	CategoryID  uuid.UUID
	Description string
	Amount      decimal.Decimal
}

// AddExpenseOutput represents the output of adding an expense.
type AddExpenseOutput struct {
	Expense       *entity.Expense
	IncomeBalance decimal.Decimal
}

// AddExpenseUseCase handles expense creation logic.
type AddExpenseUseCase struct {
	bookRepo     adapter.BookRepository
	incomeRepo   adapter.IncomeRepository
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
	balances     *ledger.BalanceCalculator
	transactor   adapter.Transactor
	clock        adapter.Clock
	cache        adapter.ReportCache
}

// NewAddExpenseUseCase creates a new AddExpenseUseCase instance.
func NewAddExpenseUseCase(
	bookRepo adapter.BookRepository,
	incomeRepo adapter.IncomeRepository,
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
	balances *ledger.BalanceCalculator,
	transactor adapter.Transactor,
	clock adapter.Clock,
	cache adapter.ReportCache,
) *AddExpenseUseCase {
	return &AddExpenseUseCase{
		bookRepo:     bookRepo,
		incomeRepo:   incomeRepo,
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		balances:     balances,
		transactor:   transactor,
		clock:        clock,
		cache:        cache,
	}
}

// Execute admits the expense if it fits in the income balance.
func (uc *AddExpenseUseCase) Execute(ctx context.Context, input AddExpenseInput) (*AddExpenseOutput, error) {
	// Validate description and amount
	if err := ledger.ValidateDescription(input.Description); err != nil {
		return nil, err
	}
	if err := ledger.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	output := &AddExpenseOutput{}
	var flowID uuid.UUID
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := uc.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
			return ledger.Translate(err, "find category")
		}

		income, book, err := LockIncome(ctx, uc.incomeRepo, uc.bookRepo, input.IncomeID)
		if err != nil {
			return err
		}
		flowID = book.FlowID

		// Admission check against the balance as stored right now
		balance, err := uc.balances.IncomeBalance(ctx, income)
		if err != nil {
			return err
		}
		if input.Amount.GreaterThan(balance) {
			return ExceedsBalanceError(balance, input.Amount)
		}

		expense := entity.NewExpense(income.ID, input.CategoryID, input.Description, input.Amount, uc.clock.Now())
		if err := uc.expenseRepo.Create(ctx, expense); err != nil {
			return ledger.Translate(err, "create expense")
		}

		output.Expense = expense
		output.IncomeBalance = balance.Sub(input.Amount)
		return nil
	})
	if err != nil {
		return nil, err
	}

	ledger.InvalidateReports(ctx, uc.cache, flowID)
	slog.InfoContext(ctx, "Expense added", "expense_id", output.Expense.ID, "income_id", output.Expense.IncomeID)

	return output, nil
}

// LockIncome loads an income and locks its book and then the income itself, in that order.
// A closed book is reported as an integrity error.
func LockIncome(
	ctx context.Context,
	incomeRepo adapter.IncomeRepository,
	bookRepo adapter.BookRepository,
	incomeID uuid.UUID,
) (*entity.Income, *entity.MonthlyIncomeBook, error) {
	income, err := incomeRepo.FindByID(ctx, incomeID)
	if err != nil {
		return nil, nil, ledger.Translate(err, "find income")
	}

	book, err := bookRepo.FindByIDForUpdate(ctx, income.BookID)
	if err != nil {
		return nil, nil, ledger.Translate(err, "lock book")
	}
	if book.IsClosed() {
		return nil, nil, ledger.BookClosedError(book.MonthName())
	}

	income, err = incomeRepo.FindByIDForUpdate(ctx, incomeID)
	if err != nil {
		return nil, nil, ledger.Translate(err, "lock income")
	}
	return income, book, nil
}

// ExceedsBalanceError reports an expense larger than the income balance, with the available amount.
func ExceedsBalanceError(available, requested decimal.Decimal) error {
	return domainerror.NewLedgerError(
		domainerror.ErrCodeExpenseExceedsBalance,
		"the expense exceeds the available income balance",
		nil,
	).
		WithDetail("available", valueobject.FormatAmount(available)).
		WithDetail("requested", valueobject.FormatAmount(requested))
}

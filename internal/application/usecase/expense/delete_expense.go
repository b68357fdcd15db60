package expense

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
)

// DeleteExpenseInput represents the input for expense deletion.
type DeleteExpenseInput struct {
	ExpenseID uuid.UUID
}

// DeleteExpenseUseCase deletes an expense from an open book. Budget items exported into it lose the reference.
type DeleteExpenseUseCase struct {
	bookRepo    adapter.BookRepository
	incomeRepo  adapter.IncomeRepository
	expenseRepo adapter.ExpenseRepository
	budgetRepo  adapter.BudgetRepository
	transactor  adapter.Transactor
	cache       adapter.ReportCache
}

// NewDeleteExpenseUseCase creates a new DeleteExpenseUseCase instance.
func NewDeleteExpenseUseCase(
	bookRepo adapter.BookRepository,
	incomeRepo adapter.IncomeRepository,
	expenseRepo adapter.ExpenseRepository,
	budgetRepo adapter.BudgetRepository,
	transactor adapter.Transactor,
	cache adapter.ReportCache,
) *DeleteExpenseUseCase {
	return &DeleteExpenseUseCase{
		bookRepo:    bookRepo,
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
		budgetRepo:  budgetRepo,
		transactor:  transactor,
		cache:       cache,
	}
}

// Execute performs the expense deletion.
func (uc *DeleteExpenseUseCase) Execute(ctx context.Context, input DeleteExpenseInput) error {
	var flowID uuid.UUID
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		expense, err := uc.expenseRepo.FindByID(ctx, input.ExpenseID)
		if err != nil {
			return ledger.Translate(err, "find expense")
		}

		_, book, err := LockIncome(ctx, uc.incomeRepo, uc.bookRepo, expense.IncomeID)
		if err != nil {
			return err
		}
		flowID = book.FlowID

		if err := uc.budgetRepo.ClearExportReferences(ctx, []uuid.UUID{expense.ID}); err != nil {
			return ledger.Translate(err, "clear budget export reference")
		}
		return ledger.Translate(uc.expenseRepo.Delete(ctx, expense.ID), "delete expense")
	})
	if err != nil {
		return err
	}

	ledger.InvalidateReports(ctx, uc.cache, flowID)
	slog.InfoContext(ctx, "Expense deleted", "expense_id", input.ExpenseID)
	return nil
}

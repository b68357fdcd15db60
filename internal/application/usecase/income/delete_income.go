package income

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
	domainerror "github.com/homeledger/backend/internal/domain/error"
)

// DeleteIncomeInput represents the input for income deletion.
type DeleteIncomeInput struct {
	IncomeID uuid.UUID
}

// DeleteIncomeUseCase deletes an income that has no expenses from an open book.
type DeleteIncomeUseCase struct {
	bookRepo    adapter.BookRepository
	incomeRepo  adapter.IncomeRepository
	expenseRepo adapter.ExpenseRepository
	transactor  adapter.Transactor
	cache       adapter.ReportCache
}

// NewDeleteIncomeUseCase creates a new DeleteIncomeUseCase instance.
func NewDeleteIncomeUseCase(
	bookRepo adapter.BookRepository,
	incomeRepo adapter.IncomeRepository,
	expenseRepo adapter.ExpenseRepository,
	transactor adapter.Transactor,
	cache adapter.ReportCache,
) *DeleteIncomeUseCase {
	return &DeleteIncomeUseCase{
		bookRepo:    bookRepo,
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
		transactor:  transactor,
		cache:       cache,
	}
}

// Execute performs the income deletion.
func (uc *DeleteIncomeUseCase) Execute(ctx context.Context, input DeleteIncomeInput) error {
	var flowID uuid.UUID
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		income, err := uc.incomeRepo.FindByID(ctx, input.IncomeID)
		if err != nil {
			return ledger.Translate(err, "find income")
		}

		book, err := uc.bookRepo.FindByIDForUpdate(ctx, income.BookID)
		if err != nil {
			return ledger.Translate(err, "find book")
		}
		if book.IsClosed() {
			return ledger.BookClosedError(book.MonthName())
		}
		flowID = book.FlowID

		// Incomes that already carry expenses are protected
		expenses, err := uc.expenseRepo.CountByIncome(ctx, income.ID)
		if err != nil {
			return ledger.Translate(err, "count expenses")
		}
		if expenses > 0 {
			return domainerror.NewLedgerError(
				domainerror.ErrCodeIncomeHasExpenses,
				"an income with expenses cannot be deleted",
				nil,
			).WithDetail("expense_count", expenses)
		}

		return ledger.Translate(uc.incomeRepo.Delete(ctx, income.ID), "delete income")
	})
	if err != nil {
		return err
	}

	ledger.InvalidateReports(ctx, uc.cache, flowID)
	slog.InfoContext(ctx, "Income deleted", "income_id", input.IncomeID)
	return nil
}

package expense

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
	"github.com/homeledger/backend/internal/domain/entity"
)

// UpdateExpenseInput represents the input for editing an expense. Nil fields are left unchanged.
type UpdateExpenseInput struct {
	ExpenseID   uuid.UUID
	CategoryID  *uuid.UUID
	Description *string
	Amount      *decimal.Decimal
}

// UpdateExpenseOutput represents the output of editing an expense.
type UpdateExpenseOutput struct {
	Expense       *entity.Expense
	IncomeBalance decimal.Decimal
}

// UpdateExpenseUseCase handles expense edits. The admission check excludes the expense's own prior amount.
type UpdateExpenseUseCase struct {
	bookRepo     adapter.BookRepository
	incomeRepo   adapter.IncomeRepository
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
	balances     *ledger.BalanceCalculator
	transactor   adapter.Transactor
	cache        adapter.ReportCache
}

// NewUpdateExpenseUseCase creates a new UpdateExpenseUseCase instance.
func NewUpdateExpenseUseCase(
	bookRepo adapter.BookRepository,
	incomeRepo adapter.IncomeRepository,
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
	balances *ledger.BalanceCalculator,
	transactor adapter.Transactor,
	cache adapter.ReportCache,
) *UpdateExpenseUseCase {
	return &UpdateExpenseUseCase{
		bookRepo:     bookRepo,
		incomeRepo:   incomeRepo,
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		balances:     balances,
		transactor:   transactor,
		cache:        cache,
	}
}

// Execute performs the expense edit.
func (uc *UpdateExpenseUseCase) Execute(ctx context.Context, input UpdateExpenseInput) (*UpdateExpenseOutput, error) {
	// Validate provided fields
	if input.Description != nil {
		if err := ledger.ValidateDescription(*input.Description); err != nil {
			return nil, err
		}
	}
	if input.Amount != nil {
		if err := ledger.ValidateAmount(*input.Amount); err != nil {
			return nil, err
		}
	}

	output := &UpdateExpenseOutput{}
	var flowID uuid.UUID
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		expense, err := uc.expenseRepo.FindByID(ctx, input.ExpenseID)
		if err != nil {
			return ledger.Translate(err, "find expense")
		}

		income, book, err := LockIncome(ctx, uc.incomeRepo, uc.bookRepo, expense.IncomeID)
		if err != nil {
			return err
		}
		flowID = book.FlowID

		if input.CategoryID != nil {
			if _, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID); err != nil {
				return ledger.Translate(err, "find category")
			}
			expense.CategoryID = *input.CategoryID
		}
		if input.Description != nil {
			expense.Description = strings.TrimSpace(*input.Description)
		}

		balance, err := uc.balances.IncomeBalance(ctx, income)
		if err != nil {
			return err
		}

		// The expense's own amount is available to itself
		if input.Amount != nil {
			available := balance.Add(expense.Amount)
			if input.Amount.GreaterThan(available) {
				return ExceedsBalanceError(available, *input.Amount)
			}
			balance = available.Sub(*input.Amount)
			expense.Amount = *input.Amount
		}

		if err := uc.expenseRepo.Update(ctx, expense); err != nil {
			return ledger.Translate(err, "update expense")
		}

		output.Expense = expense
		output.IncomeBalance = balance
		return nil
	})
	if err != nil {
		return nil, err
	}

	ledger.InvalidateReports(ctx, uc.cache, flowID)
	slog.InfoContext(ctx, "Expense updated", "expense_id", output.Expense.ID)

	return output, nil
}

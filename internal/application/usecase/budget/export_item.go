package budget

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
	"github.com/homeledger/backend/internal/domain/entity"
	domainerror "github.com/homeledger/backend/internal/domain/error"
	"github.com/homeledger/backend/internal/domain/valueobject"
)

const budgetCategoryDescription = "Expenses linked to budgets"

// ExportItemInput represents the input for exporting a budget item into expenses.
type ExportItemInput struct {
	ItemID    uuid.UUID
	IncomeIDs []uuid.UUID
}

// ExportItemOutput represents the output of an export.
type ExportItemOutput struct {
	Item     *entity.BudgetItem
	Expenses []*entity.Expense
}

// ExportItemUseCase turns a budget item into expenses, spreading its cost over the chosen incomes in order.
// Either the whole cost is covered or nothing is written.
type ExportItemUseCase struct {
	budgetRepo   adapter.BudgetRepository
	bookRepo     adapter.BookRepository
	incomeRepo   adapter.IncomeRepository
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
	balances     *ledger.BalanceCalculator
	transactor   adapter.Transactor
	clock        adapter.Clock
	cache        adapter.ReportCache
}

// NewExportItemUseCase creates a new ExportItemUseCase instance.
func NewExportItemUseCase(
	budgetRepo adapter.BudgetRepository,
	bookRepo adapter.BookRepository,
	incomeRepo adapter.IncomeRepository,
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
	balances *ledger.BalanceCalculator,
	transactor adapter.Transactor,
	clock adapter.Clock,
	cache adapter.ReportCache,
) *ExportItemUseCase {
	return &ExportItemUseCase{
		budgetRepo:   budgetRepo,
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

// Execute performs the export.
func (uc *ExportItemUseCase) Execute(ctx context.Context, input ExportItemInput) (*ExportItemOutput, error) {
	incomeIDs := dedupe(input.IncomeIDs)
	if len(incomeIDs) == 0 {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeNoIncomesSelected,
			"select at least one income to pay for the item",
			nil,
		)
	}

	output := &ExportItemOutput{}
	flows := make(map[uuid.UUID]struct{})
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		item, err := uc.budgetRepo.FindItemByIDForUpdate(ctx, input.ItemID)
		if err != nil {
			return ledger.Translate(err, "find budget item")
		}
		if item.Exported {
			return itemExportedError()
		}
		if !item.Cost.IsPositive() {
			return ledger.InvalidAmountError(errors.New("a budget item without cost cannot be exported"))
		}

		budget, err := uc.budgetRepo.FindByID(ctx, item.BudgetID)
		if err != nil {
			return ledger.Translate(err, "find budget")
		}

		category, err := uc.budgetCategory(ctx)
		if err != nil {
			return err
		}

		description := "Budget: " + budget.Name + " - " + item.Name
		if len([]rune(description)) > entity.MaxDescriptionLength {
			description = string([]rune(description)[:entity.MaxDescriptionLength])
		}

		remaining := item.Cost
		now := uc.clock.Now()
		for _, incomeID := range incomeIDs {
			if !remaining.IsPositive() {
				break
			}

			income, book, err := uc.lockFundingIncome(ctx, incomeID)
			if err != nil {
				return err
			}
			if book == nil {
				continue
			}

			balance, err := uc.balances.IncomeBalance(ctx, income)
			if err != nil {
				return err
			}
			if !balance.IsPositive() {
				continue
			}

			amount := decimal.Min(remaining, balance)
			expense := entity.NewExpense(income.ID, category.ID, description, amount, now)
			if err := uc.expenseRepo.Create(ctx, expense); err != nil {
				return ledger.Translate(err, "create expense")
			}
			output.Expenses = append(output.Expenses, expense)
			flows[book.FlowID] = struct{}{}
			remaining = remaining.Sub(amount)
		}

		// Partial coverage rolls back every expense written above
		if remaining.IsPositive() {
			return domainerror.NewLedgerError(
				domainerror.ErrCodeInsufficientFunds,
				"the selected incomes do not cover the item cost",
				nil,
			).
				WithDetail("missing", valueobject.FormatAmount(remaining)).
				WithDetail("cost", valueobject.FormatAmount(item.Cost))
		}

		item.MarkExported(output.Expenses[0].ID)
		if err := uc.budgetRepo.UpdateItem(ctx, item); err != nil {
			return ledger.Translate(err, "mark budget item exported")
		}
		output.Item = item
		return nil
	})
	if err != nil {
		return nil, asWorkflowError(ctx, err, input.ItemID)
	}

	for flowID := range flows {
		ledger.InvalidateReports(ctx, uc.cache, flowID)
	}
	slog.InfoContext(ctx, "Budget item exported",
		"item_id", output.Item.ID,
		"expenses", len(output.Expenses),
	)

	return output, nil
}

// budgetCategory returns the category exported items are charged to, creating it on first use.
func (uc *ExportItemUseCase) budgetCategory(ctx context.Context) (*entity.ExpenseCategory, error) {
	category, err := uc.categoryRepo.FindByName(ctx, entity.BudgetCategoryName)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, domainerror.ErrCategoryNotFound) {
		return nil, err
	}

	category = entity.NewExpenseCategory(entity.BudgetCategoryName, budgetCategoryDescription, uc.clock.Now())
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// lockFundingIncome locks the income and its book. A nil book means the income sits in a closed book and is skipped.
func (uc *ExportItemUseCase) lockFundingIncome(ctx context.Context, incomeID uuid.UUID) (*entity.Income, *entity.MonthlyIncomeBook, error) {
	income, err := uc.incomeRepo.FindByID(ctx, incomeID)
	if err != nil {
		return nil, nil, ledger.Translate(err, "find income")
	}

	book, err := uc.bookRepo.FindByIDForUpdate(ctx, income.BookID)
	if err != nil {
		return nil, nil, ledger.Translate(err, "lock book")
	}
	if book.IsClosed() {
		return income, nil, nil
	}

	income, err = uc.incomeRepo.FindByIDForUpdate(ctx, incomeID)
	if err != nil {
		return nil, nil, ledger.Translate(err, "lock income")
	}
	return income, book, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func asWorkflowError(ctx context.Context, err error, itemID uuid.UUID) error {
	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		return err
	}

	slog.ErrorContext(ctx, "Budget export failed", "item_id", itemID, "error", err)
	return domainerror.NewLedgerError(
		domainerror.ErrCodeExportFailed,
		"the budget item could not be exported",
		err,
	)
}

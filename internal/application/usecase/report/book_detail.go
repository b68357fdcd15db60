package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
	"github.com/homeledger/backend/internal/domain/entity"
)

// BookDetailInput represents the input for the book detail.
type BookDetailInput struct {
	BookID uuid.UUID
}

// IncomeSummary is an income with what was spent from it.
type IncomeSummary struct {
	Income        *entity.Income
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal
	ExpenseCount  int64
}

// BookDetailOutput represents a book with its incomes and totals.
type BookDetailOutput struct {
	Book            *entity.MonthlyIncomeBook
	Year            int
	Incomes         []IncomeSummary
	Totals          adapter.PeriodTotals
	CarryForward    *entity.Remnant
	PreviousRemnant *entity.Remnant
}

// BookDetailUseCase builds the book detail.
type BookDetailUseCase struct {
	flowRepo    adapter.FlowRepository
	bookRepo    adapter.BookRepository
	incomeRepo  adapter.IncomeRepository
	remnantRepo adapter.RemnantRepository
	queries     adapter.LedgerQueryRepository
}

// NewBookDetailUseCase creates a new BookDetailUseCase instance.
func NewBookDetailUseCase(
	flowRepo adapter.FlowRepository,
	bookRepo adapter.BookRepository,
	incomeRepo adapter.IncomeRepository,
	remnantRepo adapter.RemnantRepository,
	queries adapter.LedgerQueryRepository,
) *BookDetailUseCase {
	return &BookDetailUseCase{
		flowRepo:    flowRepo,
		bookRepo:    bookRepo,
		incomeRepo:  incomeRepo,
		remnantRepo: remnantRepo,
		queries:     queries,
	}
}

// Execute builds the detail. Incomes are listed newest first.
func (uc *BookDetailUseCase) Execute(ctx context.Context, input BookDetailInput) (*BookDetailOutput, error) {
	book, err := uc.bookRepo.FindByID(ctx, input.BookID)
	if err != nil {
		return nil, ledger.Translate(err, "find book")
	}
	flow, err := uc.flowRepo.FindByID(ctx, book.FlowID)
	if err != nil {
		return nil, ledger.Translate(err, "find flow")
	}

	incomes, err := uc.incomeRepo.ListByBook(ctx, book.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	summaries, totals, err := summarizeIncomes(ctx, uc.queries, incomes)
	if err != nil {
		return nil, err
	}

	output := &BookDetailOutput{
		Book:    book,
		Year:    flow.Year,
		Incomes: summaries,
		Totals:  totals,
	}

	output.CarryForward, err = uc.remnantRepo.FindCarryForwardByBook(ctx, book.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find carry-forward remnant: %w", err)
	}

	// The carry-forward of the previous month of the same flow
	if book.Month > 1 {
		for _, previous := range flow.Books {
			if previous.Month != book.Month-1 {
				continue
			}
			output.PreviousRemnant, err = uc.remnantRepo.FindCarryForwardByBook(ctx, previous.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to find previous remnant: %w", err)
			}
		}
	}

	return output, nil
}

func summarizeIncomes(
	ctx context.Context,
	queries adapter.LedgerQueryRepository,
	incomes []*entity.Income,
) ([]IncomeSummary, adapter.PeriodTotals, error) {
	totals := adapter.PeriodTotals{Income: decimal.Zero, Expenses: decimal.Zero}

	ids := make([]uuid.UUID, len(incomes))
	for i, income := range incomes {
		ids[i] = income.ID
	}
	spent, err := queries.ExpenseTotalsByIncomes(ctx, ids)
	if err != nil {
		return nil, totals, fmt.Errorf("failed to sum income expenses: %w", err)
	}

	summaries := make([]IncomeSummary, 0, len(incomes))
	for _, income := range incomes {
		expenses := spent[income.ID]
		total := expenses.Total
		if total.IsZero() {
			total = decimal.Zero
		}
		summaries = append(summaries, IncomeSummary{
			Income:        income,
			TotalExpenses: total,
			Balance:       income.Amount.Sub(total),
			ExpenseCount:  expenses.Count,
		})
		totals.Income = totals.Income.Add(income.Amount)
		totals.Expenses = totals.Expenses.Add(total)
	}
	return summaries, totals, nil
}

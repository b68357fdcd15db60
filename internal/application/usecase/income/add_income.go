// Package income contains income use cases.
package income

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
	"github.com/homeledger/backend/internal/domain/entity"
)

// AddIncomeInput represents the input for adding an income to a book.
type AddIncomeInput struct {
	BookID      uuid.UUID
	Description string
	Amount      decimal.Decimal
}

// AddIncomeOutput represents the output of adding an income.
type AddIncomeOutput struct {
	Income *entity.Income
}

// AddIncomeUseCase handles income creation logic.
type AddIncomeUseCase struct {
	bookRepo   adapter.BookRepository
	incomeRepo adapter.IncomeRepository
	transactor adapter.Transactor
	clock      adapter.Clock
	cache      adapter.ReportCache
}

// NewAddIncomeUseCase creates a new AddIncomeUseCase instance.
func NewAddIncomeUseCase(
	bookRepo adapter.BookRepository,
	incomeRepo adapter.IncomeRepository,
	transactor adapter.Transactor,
	clock adapter.Clock,
	cache adapter.ReportCache,
) *AddIncomeUseCase {
	return &AddIncomeUseCase{
		bookRepo:   bookRepo,
		incomeRepo: incomeRepo,
		transactor: transactor,
		clock:      clock,
		cache:      cache,
	}
}

// Execute adds the income to an open book.
func (uc *AddIncomeUseCase) Execute(ctx context.Context, input AddIncomeInput) (*AddIncomeOutput, error) {
	// Validate description and amount
	if err := ledger.ValidateDescription(input.Description); err != nil {
		return nil, err
	}
	if err := ledger.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var created *entity.Income
	var flowID uuid.UUID
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		book, err := uc.bookRepo.FindByIDForUpdate(ctx, input.BookID)
		if err != nil {
			return ledger.Translate(err, "find book")
		}

		// Closed books accept no new incomes
		if book.IsClosed() {
			return ledger.BookClosedError(book.MonthName())
		}

		created = entity.NewIncome(book.ID, input.Description, input.Amount, uc.clock.Now())
		flowID = book.FlowID
		return ledger.Translate(uc.incomeRepo.Create(ctx, created), "create income")
	})
	if err != nil {
		return nil, err
	}

	ledger.InvalidateReports(ctx, uc.cache, flowID)
	slog.InfoContext(ctx, "Income added", "income_id", created.ID, "book_id", created.BookID)

	return &AddIncomeOutput{
		Income: created,
	}, nil
}

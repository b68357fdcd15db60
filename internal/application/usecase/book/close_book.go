// Package book contains monthly income book use cases.
package book

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/flow"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
	"github.com/homeledger/backend/internal/domain/entity"
	domainerror "github.com/homeledger/backend/internal/domain/error"
	"github.com/homeledger/backend/internal/domain/valueobject"
)

// CloseBookInput represents the input for closing a monthly book.
type CloseBookInput struct {
	BookID uuid.UUID
}

// CloseBookOutput represents the output of closing a monthly book.
type CloseBookOutput struct {
	BookID        uuid.UUID
	FlowID        uuid.UUID
	Month         valueobject.MonthKey
	RemnantAmount decimal.Decimal
	Remnant       *entity.Remnant
	FlowClosed    bool
}

// CloseBookUseCase closes a month: its positive balance becomes a carry-forward remnant
// and the year is closed with its last month. Everything happens in one transaction.
type CloseBookUseCase struct {
	flowRepo    adapter.FlowRepository
	bookRepo    adapter.BookRepository
	remnantRepo adapter.RemnantRepository
	balances    *ledger.BalanceCalculator
	closeFlow   *flow.CloseFlowUseCase
	transactor  adapter.Transactor
	clock       adapter.Clock
	cache       adapter.ReportCache
}

// NewCloseBookUseCase creates a new CloseBookUseCase instance.
func NewCloseBookUseCase(
	flowRepo adapter.FlowRepository,
	bookRepo adapter.BookRepository,
	remnantRepo adapter.RemnantRepository,
	balances *ledger.BalanceCalculator,
	closeFlow *flow.CloseFlowUseCase,
	transactor adapter.Transactor,
	clock adapter.Clock,
	cache adapter.ReportCache,
) *CloseBookUseCase {
	return &CloseBookUseCase{
		flowRepo:    flowRepo,
		bookRepo:    bookRepo,
		remnantRepo: remnantRepo,
		balances:    balances,
		closeFlow:   closeFlow,
		transactor:  transactor,
		clock:       clock,
		cache:       cache,
	}
}

// Execute performs the month close.
func (uc *CloseBookUseCase) Execute(ctx context.Context, input CloseBookInput) (*CloseBookOutput, error) {
	output := &CloseBookOutput{BookID: input.BookID, RemnantAmount: decimal.Zero}

	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		book, err := uc.bookRepo.FindByID(ctx, input.BookID)
		if err != nil {
			return ledger.Translate(err, "find book")
		}

		// Lock the flow before the book so that concurrent month closes decide the year close one at a time
		annualFlow, err := uc.flowRepo.FindByIDForUpdate(ctx, book.FlowID)
		if err != nil {
			return ledger.Translate(err, "lock flow")
		}
		book, err = uc.bookRepo.FindByIDForUpdate(ctx, input.BookID)
		if err != nil {
			return ledger.Translate(err, "lock book")
		}

		month := valueobject.MonthKey{Year: annualFlow.Year, Month: book.Month}
		output.FlowID = annualFlow.ID
		output.Month = month

		// Closing is one way
		if book.IsClosed() {
			return bookAlreadyClosedError(month)
		}

		balance, err := uc.balances.BookBalance(ctx, book.ID)
		if err != nil {
			return err
		}

		// Only a positive balance is carried forward
		now := uc.clock.Now()
		if balance.IsPositive() {
			remnant := entity.NewCarryForwardRemnant(book.ID, balance, month, now)
			if err := uc.remnantRepo.Create(ctx, remnant); err != nil {
				return err
			}
			output.Remnant = remnant
			output.RemnantAmount = balance
		}

		if err := uc.bookRepo.MarkClosed(ctx, book.ID, now); err != nil {
			if errors.Is(err, domainerror.ErrStateChanged) {
				return bookAlreadyClosedError(month)
			}
			return err
		}

		// The last closed month closes the year
		openBooks, err := uc.bookRepo.CountOpenByFlow(ctx, annualFlow.ID)
		if err != nil {
			return err
		}
		if openBooks == 0 {
			if _, err := uc.closeFlow.Execute(ctx, flow.CloseFlowInput{FlowID: annualFlow.ID}); err != nil {
				return err
			}
			output.FlowClosed = true
		}
		return nil
	})
	if err != nil {
		return nil, asWorkflowError(ctx, err, input.BookID)
	}

	ledger.InvalidateReports(ctx, uc.cache, output.FlowID)
	slog.InfoContext(ctx, "Month closed",
		"book_id", output.BookID,
		"month", output.Month.String(),
		"remnant", output.RemnantAmount.StringFixed(valueobject.MoneyScale),
		"flow_closed", output.FlowClosed,
	)

	return output, nil
}

// asWorkflowError keeps ledger errors and hides anything unexpected behind a generic workflow error.
func asWorkflowError(ctx context.Context, err error, bookID uuid.UUID) error {
	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		return err
	}

	slog.ErrorContext(ctx, "Month close failed", "book_id", bookID, "error", err)
	return domainerror.NewLedgerError(
		domainerror.ErrCodeMonthCloseFailed,
		"the month could not be closed",
		err,
	)
}

func bookAlreadyClosedError(month valueobject.MonthKey) error {
	return domainerror.NewLedgerError(
		domainerror.ErrCodeBookAlreadyClosed,
		"the monthly book of "+month.String()+" is already closed",
		nil,
	)
}

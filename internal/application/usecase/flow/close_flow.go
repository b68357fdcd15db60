package flow

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
	domainerror "github.com/homeledger/backend/internal/domain/error"
)

// CloseFlowInput represents the input for closing a flow.
type CloseFlowInput struct {
	FlowID uuid.UUID
}

// CloseFlowOutput represents the output of closing a flow.
type CloseFlowOutput struct {
	FlowID uuid.UUID
	Year   int
}

// CloseFlowUseCase closes a flow once every month of the year is closed. Closed is terminal.
type CloseFlowUseCase struct {
	flowRepo   adapter.FlowRepository
	bookRepo   adapter.BookRepository
	transactor adapter.Transactor
	cache      adapter.ReportCache
}

// NewCloseFlowUseCase creates a new CloseFlowUseCase instance.
func NewCloseFlowUseCase(
	flowRepo adapter.FlowRepository,
	bookRepo adapter.BookRepository,
	transactor adapter.Transactor,
	cache adapter.ReportCache,
) *CloseFlowUseCase {
	return &CloseFlowUseCase{
		flowRepo:   flowRepo,
		bookRepo:   bookRepo,
		transactor: transactor,
		cache:      cache,
	}
}

// Execute closes the flow. Called inside another transaction it joins that transaction.
func (uc *CloseFlowUseCase) Execute(ctx context.Context, input CloseFlowInput) (*CloseFlowOutput, error) {
	var output *CloseFlowOutput
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		flow, err := uc.flowRepo.FindByIDForUpdate(ctx, input.FlowID)
		if err != nil {
			return ledger.Translate(err, "find flow")
		}

		// Closed is terminal
		if flow.IsClosed() {
			return flowAlreadyClosedError(flow.Year)
		}

		// Every book must be closed first
		openBooks, err := uc.bookRepo.CountOpenByFlow(ctx, flow.ID)
		if err != nil {
			return ledger.Translate(err, "count open books")
		}
		if openBooks > 0 {
			return domainerror.NewLedgerError(
				domainerror.ErrCodeFlowHasOpenBooks,
				"all monthly books must be closed before closing the year",
				nil,
			).WithDetail("open_books", openBooks)
		}

		if err := uc.flowRepo.MarkClosed(ctx, flow.ID); err != nil {
			if errors.Is(err, domainerror.ErrStateChanged) {
				return flowAlreadyClosedError(flow.Year)
			}
			return ledger.Translate(err, "close flow")
		}

		output = &CloseFlowOutput{FlowID: flow.ID, Year: flow.Year}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ledger.InvalidateReports(ctx, uc.cache, output.FlowID)
	slog.InfoContext(ctx, "Annual flow closed", "flow_id", output.FlowID, "year", output.Year)

	return output, nil
}

func flowAlreadyClosedError(year int) error {
	return domainerror.NewLedgerError(
		domainerror.ErrCodeFlowAlreadyClosed,
		"the annual flow is already closed",
		nil,
	).WithDetail("year", year)
}

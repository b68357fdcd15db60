// Package report contains the read-only ledger views: flow summary, book and income detail,
// annual report and dashboard statistics.
package report

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
	"github.com/homeledger/backend/internal/domain/entity"
)

// FlowSummaryInput represents the input for the flow summary.
type FlowSummaryInput struct {
	FlowID uuid.UUID
}

// BookSummary is one month of a flow with its totals.
type BookSummary struct {
	Book      *entity.MonthlyIncomeBook
	IsCurrent bool
	Totals    adapter.PeriodTotals
}

// FlowSummaryOutput represents a flow with its twelve months.
type FlowSummaryOutput struct {
	Flow               *entity.AnnualFlow
	Books              []BookSummary
	ClosedMonths       int
	AccumulatedRemnant decimal.Decimal
	YearTotals         adapter.PeriodTotals
}

// FlowSummaryUseCase builds the flow summary.
type FlowSummaryUseCase struct {
	flowRepo adapter.FlowRepository
	balances *ledger.BalanceCalculator
	clock    adapter.Clock
}

// NewFlowSummaryUseCase creates a new FlowSummaryUseCase instance.
func NewFlowSummaryUseCase(flowRepo adapter.FlowRepository, balances *ledger.BalanceCalculator, clock adapter.Clock) *FlowSummaryUseCase {
	return &FlowSummaryUseCase{
		flowRepo: flowRepo,
		balances: balances,
		clock:    clock,
	}
}

// Execute builds the summary.
func (uc *FlowSummaryUseCase) Execute(ctx context.Context, input FlowSummaryInput) (*FlowSummaryOutput, error) {
	flow, err := uc.flowRepo.FindByID(ctx, input.FlowID)
	if err != nil {
		return nil, ledger.Translate(err, "find flow")
	}

	yearTotals, months, err := uc.balances.FlowTotals(ctx, flow.ID)
	if err != nil {
		return nil, err
	}
	remnant, err := uc.balances.AccumulatedRemnant(ctx, flow.ID)
	if err != nil {
		return nil, err
	}

	byBook := make(map[uuid.UUID]adapter.PeriodTotals, len(months))
	for _, month := range months {
		byBook[month.BookID] = month.PeriodTotals
	}

	now := uc.clock.Now()
	output := &FlowSummaryOutput{
		Flow:               flow,
		Books:              make([]BookSummary, 0, len(flow.Books)),
		AccumulatedRemnant: remnant,
		YearTotals:         yearTotals,
	}
	for _, book := range flow.Books {
		totals, ok := byBook[book.ID]
		if !ok {
			totals = adapter.PeriodTotals{Income: decimal.Zero, Expenses: decimal.Zero}
		}
		if book.IsClosed() {
			output.ClosedMonths++
		}
		output.Books = append(output.Books, BookSummary{
			Book:      book,
			IsCurrent: book.IsCurrent(flow.Year, now),
			Totals:    totals,
		})
	}

	return output, nil
}

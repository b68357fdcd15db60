package flow

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
	"github.com/homeledger/backend/internal/domain/entity"
)

// FlowListItem is a flow with its progress and remnant balance.
type FlowListItem struct {
	Flow               *entity.AnnualFlow
	ClosedMonths       int
	AccumulatedRemnant decimal.Decimal
}

// ListFlowsOutput represents the output of listing flows.
type ListFlowsOutput struct {
	Flows []FlowListItem
}

// ListFlowsUseCase handles flow listing logic.
type ListFlowsUseCase struct {
	flowRepo adapter.FlowRepository
	balances *ledger.BalanceCalculator
}

// NewListFlowsUseCase creates a new ListFlowsUseCase instance.
func NewListFlowsUseCase(flowRepo adapter.FlowRepository, balances *ledger.BalanceCalculator) *ListFlowsUseCase {
	return &ListFlowsUseCase{
		flowRepo: flowRepo,
		balances: balances,
	}
}

// Execute lists every flow, newest year first.
func (uc *ListFlowsUseCase) Execute(ctx context.Context) (*ListFlowsOutput, error) {
	flows, err := uc.flowRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list flows: %w", err)
	}

	items := make([]FlowListItem, 0, len(flows))
	for _, flow := range flows {
		remnant, err := uc.balances.AccumulatedRemnant(ctx, flow.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, FlowListItem{
			Flow:               flow,
			ClosedMonths:       CountClosedBooks(flow.Books),
			AccumulatedRemnant: remnant,
		})
	}

	return &ListFlowsOutput{
		Flows: items,
	}, nil
}

// CountClosedBooks counts the closed books of a flow.
func CountClosedBooks(books []*entity.MonthlyIncomeBook) int {
	closed := 0
	for _, book := range books {
		if book.IsClosed() {
			closed++
		}
	}
	return closed
}

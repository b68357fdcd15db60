package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
	domainerror "github.com/homeledger/backend/internal/domain/error"
)

// DashboardOutput holds the headline numbers of the home page.
type DashboardOutput struct {
	Year               int
	FlowID             *uuid.UUID
	AccumulatedRemnant decimal.Decimal
}

// DashboardUseCase builds the dashboard statistics.
type DashboardUseCase struct {
	flowRepo adapter.FlowRepository
	balances *ledger.BalanceCalculator
	clock    adapter.Clock
}

// NewDashboardUseCase creates a new DashboardUseCase instance.
func NewDashboardUseCase(flowRepo adapter.FlowRepository, balances *ledger.BalanceCalculator, clock adapter.Clock) *DashboardUseCase {
	return &DashboardUseCase{
		flowRepo: flowRepo,
		balances: balances,
		clock:    clock,
	}
}

// Execute returns the latest flow's year and accumulated remnant, or the current year with zero when no flow exists.
func (uc *DashboardUseCase) Execute(ctx context.Context) (*DashboardOutput, error) {
	flow, err := uc.flowRepo.FindLatest(ctx)
	if errors.Is(err, domainerror.ErrFlowNotFound) {
		return &DashboardOutput{
			Year:               uc.clock.Now().Year(),
			AccumulatedRemnant: decimal.Zero,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find latest flow: %w", err)
	}

	remnant, err := uc.balances.AccumulatedRemnant(ctx, flow.ID)
	if err != nil {
		return nil, err
	}

	return &DashboardOutput{
		Year:               flow.Year,
		FlowID:             &flow.ID,
		AccumulatedRemnant: remnant,
	}, nil
}

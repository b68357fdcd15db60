package flow

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
)

// DeleteFlowInput represents the input for flow deletion.
type DeleteFlowInput struct {
	FlowID uuid.UUID
}

// DeleteFlowUseCase deletes a flow with its books, incomes, expenses, remnants and withdrawals.
type DeleteFlowUseCase struct {
	flowRepo adapter.FlowRepository
	cache    adapter.ReportCache
}

// NewDeleteFlowUseCase creates a new DeleteFlowUseCase instance.
func NewDeleteFlowUseCase(flowRepo adapter.FlowRepository, cache adapter.ReportCache) *DeleteFlowUseCase {
	return &DeleteFlowUseCase{
		flowRepo: flowRepo,
		cache:    cache,
	}
}

// Execute performs the flow deletion.
func (uc *DeleteFlowUseCase) Execute(ctx context.Context, input DeleteFlowInput) error {
	if err := uc.flowRepo.Delete(ctx, input.FlowID); err != nil {
		return ledger.Translate(err, "delete flow")
	}

	ledger.InvalidateReports(ctx, uc.cache, input.FlowID)
	slog.InfoContext(ctx, "Annual flow deleted", "flow_id", input.FlowID)
	return nil
}

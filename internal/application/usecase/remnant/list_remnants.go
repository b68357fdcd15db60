package remnant

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
)

// ListRemnantsInput represents the input for listing remnants. A nil FlowID lists every flow.
type ListRemnantsInput struct {
	FlowID *uuid.UUID
}

// ListRemnantsOutput represents the output of listing remnants.
type ListRemnantsOutput struct {
	Remnants []*adapter.RemnantRecord
	Total    decimal.Decimal
}

// ListRemnantsUseCase handles remnant listing logic.
type ListRemnantsUseCase struct {
	flowRepo    adapter.FlowRepository
	remnantRepo adapter.RemnantRepository
}

// NewListRemnantsUseCase creates a new ListRemnantsUseCase instance.
func NewListRemnantsUseCase(flowRepo adapter.FlowRepository, remnantRepo adapter.RemnantRepository) *ListRemnantsUseCase {
	return &ListRemnantsUseCase{
		flowRepo:    flowRepo,
		remnantRepo: remnantRepo,
	}
}

// Execute lists remnants newest first together with their total.
func (uc *ListRemnantsUseCase) Execute(ctx context.Context, input ListRemnantsInput) (*ListRemnantsOutput, error) {
	var (
		records []*adapter.RemnantRecord
		err     error
	)
	if input.FlowID != nil {
		if _, err := uc.flowRepo.FindByID(ctx, *input.FlowID); err != nil {
			return nil, ledger.Translate(err, "find flow")
		}
		records, err = uc.remnantRepo.ListByFlow(ctx, *input.FlowID)
	} else {
		records, err = uc.remnantRepo.ListAll(ctx)
	}
	if err != nil {
		return nil, ledger.Translate(err, "list remnants")
	}

	total := decimal.Zero
	for _, record := range records {
		total = total.Add(record.Remnant.Amount)
	}

	return &ListRemnantsOutput{
		Remnants: records,
		Total:    total,
	}, nil
}

package remnant

import (
	"context"

	"github.com/google/uuid"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
)

// GetRemnantInput represents the input for fetching a single remnant.
type GetRemnantInput struct {
	RemnantID uuid.UUID
}

// GetRemnantUseCase returns one remnant with the book and month it came from.
type GetRemnantUseCase struct {
	remnantRepo adapter.RemnantRepository
}

// NewGetRemnantUseCase creates a new GetRemnantUseCase instance.
func NewGetRemnantUseCase(remnantRepo adapter.RemnantRepository) *GetRemnantUseCase {
	return &GetRemnantUseCase{
		remnantRepo: remnantRepo,
	}
}

// Execute retrieves the remnant.
func (uc *GetRemnantUseCase) Execute(ctx context.Context, input GetRemnantInput) (*adapter.RemnantRecord, error) {
	record, err := uc.remnantRepo.FindByID(ctx, input.RemnantID)
	if err != nil {
		return nil, ledger.Translate(err, "find remnant")
	}
	return record, nil
}

// Package flow contains annual flow use cases.
package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/domain/entity"
	domainerror "github.com/homeledger/backend/internal/domain/error"
)

// CreateFlowInput represents the input for flow creation.
type CreateFlowInput struct {
	Year int
}

// CreateFlowOutput represents the output of flow creation.
type CreateFlowOutput struct {
	Flow *entity.AnnualFlow
}

// CreateFlowUseCase handles flow creation logic.
type CreateFlowUseCase struct {
	flowRepo adapter.FlowRepository
	clock    adapter.Clock
}

// NewCreateFlowUseCase creates a new CreateFlowUseCase instance.
func NewCreateFlowUseCase(flowRepo adapter.FlowRepository, clock adapter.Clock) *CreateFlowUseCase {
	return &CreateFlowUseCase{
		flowRepo: flowRepo,
		clock:    clock,
	}
}

// Execute creates the flow of a year together with its twelve open books.
func (uc *CreateFlowUseCase) Execute(ctx context.Context, input CreateFlowInput) (*CreateFlowOutput, error) {
	// Validate year range
	if !entity.IsValidFlowYear(input.Year) {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidYear,
			fmt.Sprintf("year must be between %d and %d", entity.MinFlowYear, entity.MaxFlowYear),
			nil,
		).WithDetail("year", input.Year)
	}

	// Reject duplicate years
	exists, err := uc.flowRepo.ExistsByYear(ctx, input.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to check flow year: %w", err)
	}
	if exists {
		return nil, duplicateYearError(input.Year)
	}

	flow := entity.NewAnnualFlow(input.Year, uc.clock.Now())
	if err := uc.flowRepo.Create(ctx, flow); err != nil {
		if errors.Is(err, domainerror.ErrFlowYearExists) {
			return nil, duplicateYearError(input.Year)
		}
		return nil, fmt.Errorf("failed to create flow: %w", err)
	}

	slog.InfoContext(ctx, "Annual flow created", "flow_id", flow.ID, "year", flow.Year)

	return &CreateFlowOutput{
		Flow: flow,
	}, nil
}

func duplicateYearError(year int) error {
	return domainerror.NewLedgerError(
		domainerror.ErrCodeDuplicateYear,
		fmt.Sprintf("an annual flow for %d already exists", year),
		domainerror.ErrFlowYearExists,
	).WithDetail("year", year)
}

// Package budget contains budget plan use cases, including the export of items into expenses.
package budget

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/domain/entity"
	domainerror "github.com/homeledger/backend/internal/domain/error"
)

const maxNameLength = 200

// CreateBudgetInput represents the input for budget creation.
type CreateBudgetInput struct {
	Name string
}

// CreateBudgetOutput represents the output of budget creation.
type CreateBudgetOutput struct {
	Budget *entity.Budget
}

// CreateBudgetUseCase handles budget creation logic.
type CreateBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
	clock      adapter.Clock
}

// NewCreateBudgetUseCase creates a new CreateBudgetUseCase instance.
func NewCreateBudgetUseCase(budgetRepo adapter.BudgetRepository, clock adapter.Clock) *CreateBudgetUseCase {
	return &CreateBudgetUseCase{
		budgetRepo: budgetRepo,
		clock:      clock,
	}
}

// Execute performs the budget creation.
func (uc *CreateBudgetUseCase) Execute(ctx context.Context, input CreateBudgetInput) (*CreateBudgetOutput, error) {
	if err := validateName(input.Name); err != nil {
		return nil, err
	}

	budget := entity.NewBudget(input.Name, uc.clock.Now())
	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	return &CreateBudgetOutput{
		Budget: budget,
	}, nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidBudgetName,
			fmt.Sprintf("name is required and must be at most %d characters", maxNameLength),
			nil,
		)
	}
	return nil
}

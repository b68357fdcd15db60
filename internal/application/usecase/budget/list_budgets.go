package budget

import (
	"context"
	"fmt"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/domain/entity"
)

// ListBudgetsOutput represents the output of listing budgets.
type ListBudgetsOutput struct {
	Budgets []*entity.Budget
}

// ListBudgetsUseCase handles budget listing logic.
type ListBudgetsUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(budgetRepo adapter.BudgetRepository) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute lists every budget with its items, newest first.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context) (*ListBudgetsOutput, error) {
	budgets, err := uc.budgetRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return &ListBudgetsOutput{
		Budgets: budgets,
	}, nil
}

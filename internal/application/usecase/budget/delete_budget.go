package budget

import (
	"context"

	"github.com/google/uuid"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
	domainerror "github.com/homeledger/backend/internal/domain/error"
)

// DeleteBudgetInput represents the input for budget deletion.
type DeleteBudgetInput struct {
	BudgetID uuid.UUID
}

// DeleteBudgetUseCase deletes a budget whose items were never exported.
type DeleteBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
	transactor adapter.Transactor
}

// NewDeleteBudgetUseCase creates a new DeleteBudgetUseCase instance.
func NewDeleteBudgetUseCase(budgetRepo adapter.BudgetRepository, transactor adapter.Transactor) *DeleteBudgetUseCase {
	return &DeleteBudgetUseCase{
		budgetRepo: budgetRepo,
		transactor: transactor,
	}
}

// Execute performs the budget deletion.
func (uc *DeleteBudgetUseCase) Execute(ctx context.Context, input DeleteBudgetInput) error {
	return uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		budget, err := uc.budgetRepo.FindByID(ctx, input.BudgetID)
		if err != nil {
			return ledger.Translate(err, "find budget")
		}

		if budget.HasExportedItems() {
			return domainerror.NewLedgerError(
				domainerror.ErrCodeBudgetHasExportedItems,
				"a budget with exported items cannot be deleted",
				nil,
			)
		}

		return ledger.Translate(uc.budgetRepo.Delete(ctx, budget.ID), "delete budget")
	})
}

package category

import (
	"context"

	"github.com/google/uuid"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
	domainerror "github.com/homeledger/backend/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	CategoryID uuid.UUID
}

// DeleteCategoryUseCase deletes a category no expense references.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	expenseRepo  adapter.ExpenseRepository
	transactor   adapter.Transactor
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(
	categoryRepo adapter.CategoryRepository,
	expenseRepo adapter.ExpenseRepository,
	transactor adapter.Transactor,
) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
		transactor:   transactor,
	}
}

// Execute performs the category deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) error {
	return uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		// Find the existing category
		if _, err := uc.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
			return ledger.Translate(err, "find category")
		}

		// Referenced categories are protected
		count, err := uc.expenseRepo.CountByCategory(ctx, input.CategoryID)
		if err != nil {
			return ledger.Translate(err, "count category expenses")
		}
		if count > 0 {
			return domainerror.NewLedgerError(
				domainerror.ErrCodeCategoryInUse,
				"the category is used by expenses and cannot be deleted",
				nil,
			).WithDetail("expense_count", count)
		}

		return ledger.Translate(uc.categoryRepo.Delete(ctx, input.CategoryID), "delete category")
	})
}

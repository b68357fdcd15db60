// Package category contains expense category use cases.
package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/domain/entity"
	domainerror "github.com/homeledger/backend/internal/domain/error"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Name        string
	Description string
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.ExpenseCategory
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	clock        adapter.Clock
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository, clock adapter.Clock) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
		clock:        clock,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	// Validate name and description
	if err := validateFields(input.Name, input.Description); err != nil {
		return nil, err
	}

	// Check name uniqueness
	exists, err := uc.categoryRepo.ExistsByName(ctx, strings.TrimSpace(input.Name), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return nil, nameExistsError(input.Name)
	}

	category := entity.NewExpenseCategory(input.Name, input.Description, uc.clock.Now())
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, domainerror.ErrCategoryNameExists) {
			return nil, nameExistsError(input.Name)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{
		Category: category,
	}, nil
}

func validateFields(name, description string) error {
	if !entity.IsValidDescription(name, entity.MaxCategoryNameLength) {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidCategoryName,
			fmt.Sprintf("category name is required and must be at most %d characters", entity.MaxCategoryNameLength),
			nil,
		)
	}
	if len([]rune(strings.TrimSpace(description))) > entity.MaxCategoryDescriptionLength {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidDescription,
			fmt.Sprintf("category description must be at most %d characters", entity.MaxCategoryDescriptionLength),
			nil,
		)
	}
	return nil
}

func nameExistsError(name string) error {
	return domainerror.NewLedgerError(
		domainerror.ErrCodeCategoryNameExists,
		"a category with this name already exists",
		domainerror.ErrCategoryNameExists,
	).WithDetail("name", strings.TrimSpace(name))
}

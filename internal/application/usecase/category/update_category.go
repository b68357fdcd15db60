package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
	"github.com/homeledger/backend/internal/domain/entity"
	domainerror "github.com/homeledger/backend/internal/domain/error"
)

// UpdateCategoryInput represents the input for category update. Nil fields are left unchanged.
type UpdateCategoryInput struct {
	CategoryID  uuid.UUID
	Name        *string
	Description *string
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category *entity.ExpenseCategory
}

// UpdateCategoryUseCase handles category update logic.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	clock        adapter.Clock
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository, clock adapter.Clock) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo: categoryRepo,
		clock:        clock,
	}
}

// Execute performs the category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, ledger.Translate(err, "find category")
	}

	name, description := category.Name, category.Description
	if input.Name != nil {
		name = *input.Name
	}
	if input.Description != nil {
		description = *input.Description
	}
	if err := validateFields(name, description); err != nil {
		return nil, err
	}

	// Check name uniqueness against the other categories
	exists, err := uc.categoryRepo.ExistsByName(ctx, strings.TrimSpace(name), &category.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return nil, nameExistsError(name)
	}

	category.Name = strings.TrimSpace(name)
	category.Description = strings.TrimSpace(description)
	category.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, domainerror.ErrCategoryNameExists) {
			return nil, nameExistsError(name)
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &UpdateCategoryOutput{
		Category: category,
	}, nil
}

package budget

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
	"github.com/homeledger/backend/internal/domain/entity"
	domainerror "github.com/homeledger/backend/internal/domain/error"
)

// AddItemInput represents the input for adding an item to a budget.
type AddItemInput struct {
	BudgetID    uuid.UUID
	Name        string
	URL         string
	Description string
	Cost        decimal.Decimal
}

// UpdateItemInput represents the input for editing a budget item. Nil fields are left unchanged.
type UpdateItemInput struct {
	ItemID      uuid.UUID
	Name        *string
	URL         *string
	Description *string
	Cost        *decimal.Decimal
}

// DeleteItemInput represents the input for deleting a budget item.
type DeleteItemInput struct {
	ItemID uuid.UUID
}

// ItemOutput represents a budget item after a change.
type ItemOutput struct {
	Item *entity.BudgetItem
}

// ItemsUseCase handles adding, editing and deleting budget items. Exported items are frozen.
type ItemsUseCase struct {
	budgetRepo adapter.BudgetRepository
	transactor adapter.Transactor
	clock      adapter.Clock
}

// NewItemsUseCase creates a new ItemsUseCase instance.
func NewItemsUseCase(budgetRepo adapter.BudgetRepository, transactor adapter.Transactor, clock adapter.Clock) *ItemsUseCase {
	return &ItemsUseCase{
		budgetRepo: budgetRepo,
		transactor: transactor,
		clock:      clock,
	}
}

// Add adds an item to a budget.
func (uc *ItemsUseCase) Add(ctx context.Context, input AddItemInput) (*ItemOutput, error) {
	if err := validateItem(input.Name, input.URL, input.Cost); err != nil {
		return nil, err
	}

	if _, err := uc.budgetRepo.FindByID(ctx, input.BudgetID); err != nil {
		return nil, ledger.Translate(err, "find budget")
	}

	item := entity.NewBudgetItem(input.BudgetID, input.Name, input.URL, input.Description, input.Cost, uc.clock.Now())
	if err := uc.budgetRepo.CreateItem(ctx, item); err != nil {
		return nil, ledger.Translate(err, "create budget item")
	}
	return &ItemOutput{Item: item}, nil
}

// Update edits an item that was not exported.
func (uc *ItemsUseCase) Update(ctx context.Context, input UpdateItemInput) (*ItemOutput, error) {
	var item *entity.BudgetItem
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		item, err = uc.budgetRepo.FindItemByIDForUpdate(ctx, input.ItemID)
		if err != nil {
			return ledger.Translate(err, "find budget item")
		}
		if item.Exported {
			return itemExportedError()
		}

		if input.Name != nil {
			item.Name = strings.TrimSpace(*input.Name)
		}
		if input.URL != nil {
			item.URL = strings.TrimSpace(*input.URL)
		}
		if input.Description != nil {
			item.Description = strings.TrimSpace(*input.Description)
		}
		if input.Cost != nil {
			item.Cost = *input.Cost
		}
		if err := validateItem(item.Name, item.URL, item.Cost); err != nil {
			return err
		}

		return ledger.Translate(uc.budgetRepo.UpdateItem(ctx, item), "update budget item")
	})
	if err != nil {
		return nil, err
	}
	return &ItemOutput{Item: item}, nil
}

// Delete removes an item that was not exported.
func (uc *ItemsUseCase) Delete(ctx context.Context, input DeleteItemInput) error {
	return uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		item, err := uc.budgetRepo.FindItemByIDForUpdate(ctx, input.ItemID)
		if err != nil {
			return ledger.Translate(err, "find budget item")
		}
		if item.Exported {
			return itemExportedError()
		}
		return ledger.Translate(uc.budgetRepo.DeleteItem(ctx, item.ID), "delete budget item")
	})
}

func validateItem(name, url string, cost decimal.Decimal) error {
	if err := validateName(name); err != nil {
		return err
	}
	if utf8.RuneCountInString(strings.TrimSpace(url)) > 500 {
		return domainerror.NewLedgerError(domainerror.ErrCodeInvalidDescription, "url must be at most 500 characters", nil)
	}
	return ledger.ValidateAmount(cost)
}

func itemExportedError() error {
	return domainerror.NewLedgerError(
		domainerror.ErrCodeBudgetItemExported,
		"an exported budget item cannot be changed",
		nil,
	)
}

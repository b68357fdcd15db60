package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/homeledger/backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Create creates a new budget in the database.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByID retrieves a budget with its items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// List retrieves all budgets with their items, newest first.
	List(ctx context.Context) ([]*entity.Budget, error)

	// Delete removes a budget and its items.
	Delete(ctx context.Context, id uuid.UUID) error

	// CreateItem adds an item to a budget.
	CreateItem(ctx context.Context, item *entity.BudgetItem) error

	// FindItemByID retrieves a budget item by its ID.
	FindItemByID(ctx context.Context, id uuid.UUID) (*entity.BudgetItem, error)

	// FindItemByIDForUpdate retrieves a budget item row locked for the current transaction.
	FindItemByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.BudgetItem, error)

	// UpdateItem updates an existing budget item.
	UpdateItem(ctx context.Context, item *entity.BudgetItem) error

	// DeleteItem removes a budget item.
	DeleteItem(ctx context.Context, id uuid.UUID) error

	// ClearExportReferences nulls the export reference of items pointing at the given expenses.
	ClearExportReferences(ctx context.Context, expenseIDs []uuid.UUID) error
}

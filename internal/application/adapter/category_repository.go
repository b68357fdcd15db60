package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/homeledger/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for expense category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.ExpenseCategory) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ExpenseCategory, error)

	// FindByName retrieves a category by its exact name.
	FindByName(ctx context.Context, name string) (*entity.ExpenseCategory, error)

	// List retrieves all categories ordered by name.
	List(ctx context.Context) ([]*entity.ExpenseCategory, error)

	// Update updates an existing category.
	Update(ctx context.Context, category *entity.ExpenseCategory) error

	// Delete removes a category from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByName checks if a category with the given name exists, ignoring excludeID when set.
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
}

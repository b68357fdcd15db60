package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/homeledger/backend/internal/domain/entity"
)

// IncomeRepository defines the interface for income persistence operations.
type IncomeRepository interface {
	// Create creates a new income in the database.
	Create(ctx context.Context, income *entity.Income) error

	// FindByID retrieves an income by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Income, error)

	// FindByIDForUpdate retrieves an income row locked for the current transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Income, error)

	// ListByBook retrieves the incomes of a book, newest first.
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]*entity.Income, error)

	// ListByFlow retrieves every income of a flow ordered by month and creation time.
	ListByFlow(ctx context.Context, flowID uuid.UUID) ([]*entity.Income, error)

	// ListInOpenBooks retrieves the incomes whose book is still open, newest first.
	ListInOpenBooks(ctx context.Context) ([]*entity.Income, error)

	// ExistsByWithdrawalID checks if a withdrawal already deposited its income.
	ExistsByWithdrawalID(ctx context.Context, withdrawalID uuid.UUID) (bool, error)

	// Delete removes an income from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExpenseRepository defines the interface for expense persistence operations.
type ExpenseRepository interface {
	// Create creates a new expense in the database.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByID retrieves an expense by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)

	// Update updates the description, category and amount of an expense.
	Update(ctx context.Context, expense *entity.Expense) error

	// Delete removes an expense from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByIncome retrieves the expenses of an income, newest first.
	ListByIncome(ctx context.Context, incomeID uuid.UUID) ([]*entity.Expense, error)

	// CountByIncome counts the expenses charged to an income.
	CountByIncome(ctx context.Context, incomeID uuid.UUID) (int64, error)

	// CountByCategory counts the expenses referencing a category.
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/homeledger/backend/internal/domain/entity"
)

// FlowRepository defines the interface for annual flow persistence operations.
type FlowRepository interface {
	// Create persists a flow together with its books.
	Create(ctx context.Context, flow *entity.AnnualFlow) error

	// FindByID retrieves a flow with its books ordered by month.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AnnualFlow, error)

	// FindByIDForUpdate retrieves a flow row locked for the current transaction, without books.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.AnnualFlow, error)

	// FindLatest retrieves the flow with the highest year.
	FindLatest(ctx context.Context) (*entity.AnnualFlow, error)

	// List retrieves all flows with their books, newest year first.
	List(ctx context.Context) ([]*entity.AnnualFlow, error)

	// ExistsByYear checks if a flow exists for the given year.
	ExistsByYear(ctx context.Context, year int) (bool, error)

	// MarkClosed closes an open flow. Returns ErrStateChanged when the flow was not open.
	MarkClosed(ctx context.Context, id uuid.UUID) error

	// Delete removes a flow and everything it owns.
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookRepository defines the interface for monthly book persistence operations.
type BookRepository interface {
	// FindByID retrieves a book by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MonthlyIncomeBook, error)

	// FindByIDForUpdate retrieves a book row locked for the current transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.MonthlyIncomeBook, error)

	// FindByFlowAndMonth retrieves the book of a flow for a calendar month.
	FindByFlowAndMonth(ctx context.Context, flowID uuid.UUID, month int) (*entity.MonthlyIncomeBook, error)

	// ListByFlow retrieves the books of a flow ordered by month.
	ListByFlow(ctx context.Context, flowID uuid.UUID) ([]*entity.MonthlyIncomeBook, error)

	// CountOpenByFlow counts the books of a flow that are still open.
	CountOpenByFlow(ctx context.Context, flowID uuid.UUID) (int64, error)

	// MarkClosed closes an open book. Returns ErrStateChanged when the book was not open.
	MarkClosed(ctx context.Context, id uuid.UUID, closedAt time.Time) error
}

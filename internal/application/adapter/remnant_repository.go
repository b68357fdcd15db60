package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/homeledger/backend/internal/domain/entity"
)

// RemnantRecord is a remnant joined with the book and flow it belongs to.
type RemnantRecord struct {
	Remnant *entity.Remnant
	FlowID  uuid.UUID
	Year    int
	Month   int
}

// RemnantRepository defines the interface for remnant persistence operations.
type RemnantRepository interface {
	// Create creates a new remnant in the database.
	Create(ctx context.Context, remnant *entity.Remnant) error

	// FindByID retrieves a remnant joined with its book and flow.
	FindByID(ctx context.Context, id uuid.UUID) (*RemnantRecord, error)

	// FindCarryForwardByBook retrieves the carry-forward remnant of a book, or nil when none exists.
	FindCarryForwardByBook(ctx context.Context, bookID uuid.UUID) (*entity.Remnant, error)

	// ExistsByWithdrawalID checks if a withdrawal already wrote its remnant entry.
	ExistsByWithdrawalID(ctx context.Context, withdrawalID uuid.UUID) (bool, error)

	// ListByFlow retrieves the remnants of a flow, newest first.
	ListByFlow(ctx context.Context, flowID uuid.UUID) ([]*RemnantRecord, error)

	// ListAll retrieves the remnants of every flow, newest first.
	ListAll(ctx context.Context) ([]*RemnantRecord, error)
}

// WithdrawalRepository defines the interface for remnant withdrawal persistence operations.
type WithdrawalRepository interface {
	// Create creates a new withdrawal in the database.
	Create(ctx context.Context, withdrawal *entity.RemnantWithdrawal) error

	// FindByIDForUpdate retrieves a withdrawal row locked for the current transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.RemnantWithdrawal, error)

	// MarkApplied moves a pending withdrawal to applied. Returns ErrStateChanged when it was not pending.
	MarkApplied(ctx context.Context, id uuid.UUID, appliedAt time.Time) error
}

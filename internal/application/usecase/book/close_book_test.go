package book

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/flow"
	"github.com/homeledger/backend/internal/application/usecase/usecasetest"
	"github.com/homeledger/backend/internal/domain/entity"
	domainerror "github.com/homeledger/backend/internal/domain/error"
)

func newCloseBookUseCase(env *usecasetest.Env) *CloseBookUseCase {
	closeFlow := flow.NewCloseFlowUseCase(env.Flows, env.Books, env.Transactor, env.Cache)
	return NewCloseBookUseCase(env.Flows, env.Books, env.Remnants, env.Balances, closeFlow, env.Transactor, env.Clock, env.Cache)
}

// failingMarkClosed fails the book state update, after the carry-forward remnant has been written.
type failingMarkClosed struct {
	adapter.BookRepository
}

func (failingMarkClosed) MarkClosed(context.Context, uuid.UUID, time.Time) error {
	return errors.New("connection reset")
}

func TestCloseBookUseCase_CarryForward(t *testing.T) {
	tests := []struct {
		name            string
		incomes         []string
		expenses        []string
		expectedRemnant string
		expectRemnant   bool
	}{
		{
			name:            "positive balance becomes a remnant",
			incomes:         []string{"100.00"},
			expenses:        []string{"40.00"},
			expectedRemnant: "60.00",
			expectRemnant:   true,
		},
		{
			name:            "balance summed over several incomes",
			incomes:         []string{"100.00", "50.50"},
			expenses:        []string{"20.25"},
			expectedRemnant: "130.25",
			expectRemnant:   true,
		},
		{
			name:            "zero balance produces no remnant",
			incomes:         []string{"80.00"},
			expenses:        []string{"80.00"},
			expectedRemnant: "0",
			expectRemnant:   false,
		},
		{
			name:            "empty month produces no remnant",
			expectedRemnant: "0",
			expectRemnant:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := usecasetest.New(t)
			ctx := context.Background()
			annualFlow := env.Flow(t, 2025)
			book := env.Book(t, annualFlow.ID, 3)
			category := env.Category(t, "Groceries")

			var first *entity.Income
			for _, amount := range tt.incomes {
				income := env.Income(t, book.ID, "Salary", amount)
				if first == nil {
					first = income
				}
			}
			for _, amount := range tt.expenses {
				env.Expense(t, first.ID, category.ID, "Market", amount)
			}

			output, err := newCloseBookUseCase(env).Execute(ctx, CloseBookInput{BookID: book.ID})
			require.NoError(t, err)

			assert.True(t, output.RemnantAmount.Equal(usecasetest.Amount(t, tt.expectedRemnant)),
				"remnant = %s, want %s", output.RemnantAmount, tt.expectedRemnant)
			assert.Equal(t, tt.expectRemnant, output.Remnant != nil)
			assert.False(t, output.FlowClosed)

			closed, err := env.Books.FindByID(ctx, book.ID)
			require.NoError(t, err)
			assert.True(t, closed.IsClosed())
			assert.NotNil(t, closed.ClosedAt)

			stored, err := env.Remnants.FindCarryForwardByBook(ctx, book.ID)
			require.NoError(t, err)
			if tt.expectRemnant {
				require.NotNil(t, stored)
				assert.True(t, stored.Amount.Equal(output.RemnantAmount))
				assert.Equal(t, "Remnant of March 2025", stored.Description)
			} else {
				assert.Nil(t, stored)
			}

			accumulated, err := env.Balances.AccumulatedRemnant(ctx, annualFlow.ID)
			require.NoError(t, err)
			assert.True(t, accumulated.Equal(output.RemnantAmount))
		})
	}
}

func TestCloseBookUseCase_AlreadyClosed(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	annualFlow := env.Flow(t, 2025)
	book := env.Book(t, annualFlow.ID, 1)
	env.Income(t, book.ID, "Salary", "10.00")
	uc := newCloseBookUseCase(env)

	_, err := uc.Execute(ctx, CloseBookInput{BookID: book.ID})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, CloseBookInput{BookID: book.ID})
	require.Error(t, err)
	assert.True(t, domainerror.IsLedgerErrorCode(err, domainerror.ErrCodeBookAlreadyClosed))

	// The second attempt must not write another remnant
	accumulated, err := env.Balances.AccumulatedRemnant(ctx, annualFlow.ID)
	require.NoError(t, err)
	assert.True(t, accumulated.Equal(decimal.NewFromInt(10)))
}

func TestCloseBookUseCase_LastMonthClosesFlow(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	annualFlow := env.Flow(t, 2025)
	uc := newCloseBookUseCase(env)

	for month := 1; month <= 11; month++ {
		output, err := uc.Execute(ctx, CloseBookInput{BookID: env.Book(t, annualFlow.ID, month).ID})
		require.NoError(t, err)
		assert.False(t, output.FlowClosed, "month %d", month)
	}

	output, err := uc.Execute(ctx, CloseBookInput{BookID: env.Book(t, annualFlow.ID, 12).ID})
	require.NoError(t, err)
	assert.True(t, output.FlowClosed)

	stored, err := env.Flows.FindByID(ctx, annualFlow.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsClosed())
}

func TestCloseBookUseCase_UnknownBook(t *testing.T) {
	env := usecasetest.New(t)

	_, err := newCloseBookUseCase(env).Execute(context.Background(), CloseBookInput{BookID: uuid.New()})
	require.Error(t, err)
	assert.True(t, domainerror.IsLedgerErrorCode(err, domainerror.ErrCodeBookNotFound))
}

func TestCloseBookUseCase_RollsBackOnFailure(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	annualFlow := env.Flow(t, 2025)
	book := env.Book(t, annualFlow.ID, 3)
	env.Income(t, book.ID, "Salary", "100.00")

	closeFlow := flow.NewCloseFlowUseCase(env.Flows, env.Books, env.Transactor, env.Cache)
	uc := NewCloseBookUseCase(env.Flows, failingMarkClosed{env.Books}, env.Remnants, env.Balances, closeFlow, env.Transactor, env.Clock, env.Cache)

	_, err := uc.Execute(ctx, CloseBookInput{BookID: book.ID})
	require.Error(t, err)
	assert.True(t, domainerror.IsLedgerErrorCode(err, domainerror.ErrCodeMonthCloseFailed))
	var ledgerErr *domainerror.LedgerError
	require.ErrorAs(t, err, &ledgerErr)
	assert.NotContains(t, ledgerErr.Message, "connection reset")

	stored, err := env.Remnants.FindCarryForwardByBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	open, err := env.Books.FindByID(ctx, book.ID)
	require.NoError(t, err)
	assert.False(t, open.IsClosed())

	accumulated, err := env.Balances.AccumulatedRemnant(ctx, annualFlow.ID)
	require.NoError(t, err)
	assert.True(t, accumulated.IsZero())
}

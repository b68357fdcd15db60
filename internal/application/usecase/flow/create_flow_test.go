package flow

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeledger/backend/internal/application/usecase/usecasetest"
	"github.com/homeledger/backend/internal/domain/entity"
	domainerror "github.com/homeledger/backend/internal/domain/error"
)

func TestCreateFlowUseCase(t *testing.T) {
	tests := []struct {
		name         string
		existing     []int
		year         int
		expectedCode domainerror.LedgerErrorCode
	}{
		{
			name: "new year",
			year: 2025,
		},
		{
			name:     "other year exists",
			existing: []int{2024},
			year:     2025,
		},
		{
			name:         "duplicate year",
			existing:     []int{2025},
			year:         2025,
			expectedCode: domainerror.ErrCodeDuplicateYear,
		},
		{
			name:         "year before range",
			year:         1999,
			expectedCode: domainerror.ErrCodeInvalidYear,
		},
		{
			name:         "year after range",
			year:         2101,
			expectedCode: domainerror.ErrCodeInvalidYear,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := usecasetest.New(t)
			ctx := context.Background()
			for _, year := range tt.existing {
				env.Flow(t, year)
			}

			output, err := NewCreateFlowUseCase(env.Flows, env.Clock).Execute(ctx, CreateFlowInput{Year: tt.year})
			if tt.expectedCode != "" {
				require.Error(t, err)
				assert.True(t, domainerror.IsLedgerErrorCode(err, tt.expectedCode), "got %v", err)
				return
			}
			require.NoError(t, err)

			stored, err := env.Flows.FindByID(ctx, output.Flow.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.year, stored.Year)
			assert.Equal(t, entity.PeriodOpen, stored.State)
			require.Len(t, stored.Books, 12)
			for i, book := range stored.Books {
				assert.Equal(t, i+1, book.Month)
				assert.False(t, book.IsClosed())
			}
		})
	}
}

func TestCloseFlowUseCase(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	annualFlow := env.Flow(t, 2025)
	uc := NewCloseFlowUseCase(env.Flows, env.Books, env.Transactor, env.Cache)

	_, err := uc.Execute(ctx, CloseFlowInput{FlowID: annualFlow.ID})
	require.Error(t, err)
	var ledgerErr *domainerror.LedgerError
	require.ErrorAs(t, err, &ledgerErr)
	assert.Equal(t, domainerror.ErrCodeFlowHasOpenBooks, ledgerErr.Code)
	assert.Equal(t, int64(12), ledgerErr.Details["open_books"])

	for _, book := range annualFlow.Books {
		require.NoError(t, env.Books.MarkClosed(ctx, book.ID, env.Clock.Now()))
	}

	output, err := uc.Execute(ctx, CloseFlowInput{FlowID: annualFlow.ID})
	require.NoError(t, err)
	assert.Equal(t, 2025, output.Year)

	_, err = uc.Execute(ctx, CloseFlowInput{FlowID: annualFlow.ID})
	assert.True(t, domainerror.IsLedgerErrorCode(err, domainerror.ErrCodeFlowAlreadyClosed))

	_, err = uc.Execute(ctx, CloseFlowInput{FlowID: uuid.New()})
	assert.True(t, domainerror.IsLedgerErrorCode(err, domainerror.ErrCodeFlowNotFound))
}

func TestListFlowsUseCase(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	older := env.Flow(t, 2024)
	env.Flow(t, 2025)
	env.CarryForward(t, older, 1, "42.50")
	require.NoError(t, env.Books.MarkClosed(ctx, env.Book(t, older.ID, 1).ID, env.Clock.Now()))

	output, err := NewListFlowsUseCase(env.Flows, env.Balances).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, output.Flows, 2)

	assert.Equal(t, 2025, output.Flows[0].Flow.Year)
	assert.Equal(t, 0, output.Flows[0].ClosedMonths)
	assert.True(t, output.Flows[0].AccumulatedRemnant.IsZero())

	assert.Equal(t, 2024, output.Flows[1].Flow.Year)
	assert.Equal(t, 1, output.Flows[1].ClosedMonths)
	assert.True(t, output.Flows[1].AccumulatedRemnant.Equal(usecasetest.Amount(t, "42.50")))
}

func TestDeleteFlowUseCase(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	annualFlow := env.Flow(t, 2025)
	income := env.Income(t, env.Book(t, annualFlow.ID, 3).ID, "Salary", "100.00")
	category := env.Category(t, "Groceries")
	env.Expense(t, income.ID, category.ID, "Market", "10.00")
	env.CarryForward(t, annualFlow, 2, "5.00")

	uc := NewDeleteFlowUseCase(env.Flows, env.Cache)
	require.NoError(t, uc.Execute(ctx, DeleteFlowInput{FlowID: annualFlow.ID}))

	_, err := env.Flows.FindByID(ctx, annualFlow.ID)
	assert.ErrorIs(t, err, domainerror.ErrFlowNotFound)
	_, err = env.Incomes.FindByID(ctx, income.ID)
	assert.ErrorIs(t, err, domainerror.ErrIncomeNotFound)

	// Categories outlive flows
	_, err = env.Categories.FindByID(ctx, category.ID)
	assert.NoError(t, err)

	err = uc.Execute(ctx, DeleteFlowInput{FlowID: annualFlow.ID})
	assert.True(t, domainerror.IsLedgerErrorCode(err, domainerror.ErrCodeFlowNotFound))
}

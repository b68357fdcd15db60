package remnant

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/usecasetest"
	"github.com/homeledger/backend/internal/domain/entity"
	domainerror "github.com/homeledger/backend/internal/domain/error"
)

func newWithdrawUseCase(env *usecasetest.Env) *WithdrawRemnantUseCase {
	return NewWithdrawRemnantUseCase(env.Flows, env.Books, env.Incomes, env.Remnants, env.Withdrawals, env.Balances, env.Transactor, env.Clock, env.Cache)
}

// missingBooks reports every book as absent.
type missingBooks struct {
	adapter.BookRepository
}

func (missingBooks) FindByFlowAndMonth(context.Context, uuid.UUID, int) (*entity.MonthlyIncomeBook, error) {
	return nil, domainerror.ErrBookNotFound
}

// failingIncomes fails the deposit income, after the withdrawal and its remnant entry have been written.
type failingIncomes struct {
	adapter.IncomeRepository
}

func (failingIncomes) Create(context.Context, *entity.Income) error {
	return errors.New("connection reset")
}

// seedRemnant closes January and February of 2025 with 120.00 and 80.00 carried forward.
func seedRemnant(t *testing.T, env *usecasetest.Env) *entity.AnnualFlow {
	t.Helper()

	ctx := context.Background()
	annualFlow := env.Flow(t, 2025)
	env.CarryForward(t, annualFlow, 1, "120.00")
	env.CarryForward(t, annualFlow, 2, "80.00")
	require.NoError(t, env.Books.MarkClosed(ctx, env.Book(t, annualFlow.ID, 1).ID, env.Clock.Now()))
	require.NoError(t, env.Books.MarkClosed(ctx, env.Book(t, annualFlow.ID, 2).ID, env.Clock.Now()))
	return annualFlow
}

func TestWithdrawRemnantUseCase_Validation(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		description  string
		targetMonth  int
		expectedCode domainerror.LedgerErrorCode
	}{
		{
			name:         "exceeds accumulated remnant",
			amount:       "250.00",
			description:  "Vacation",
			targetMonth:  4,
			expectedCode: domainerror.ErrCodeWithdrawalExceedsRemnant,
		},
		{
			name:         "zero amount",
			amount:       "0",
			description:  "Vacation",
			targetMonth:  4,
			expectedCode: domainerror.ErrCodeInvalidAmount,
		},
		{
			name:         "blank description",
			amount:       "10.00",
			description:  "   ",
			targetMonth:  4,
			expectedCode: domainerror.ErrCodeInvalidDescription,
		},
		{
			name:         "month out of range",
			amount:       "10.00",
			description:  "Vacation",
			targetMonth:  13,
			expectedCode: domainerror.ErrCodeInvalidMonth,
		},
		{
			name:         "closed target month",
			amount:       "10.00",
			description:  "Vacation",
			targetMonth:  2,
			expectedCode: domainerror.ErrCodeBookClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := usecasetest.New(t)
			ctx := context.Background()
			annualFlow := seedRemnant(t, env)

			_, err := newWithdrawUseCase(env).Execute(ctx, WithdrawRemnantInput{
				FlowID:      annualFlow.ID,
				Amount:      usecasetest.Amount(t, tt.amount),
				Description: tt.description,
				TargetMonth: tt.targetMonth,
			})
			require.Error(t, err)
			assert.True(t, domainerror.IsLedgerErrorCode(err, tt.expectedCode), "got %v", err)

			// Nothing is written on rejection
			accumulated, err := env.Balances.AccumulatedRemnant(ctx, annualFlow.ID)
			require.NoError(t, err)
			assert.True(t, accumulated.Equal(usecasetest.Amount(t, "200.00")))
		})
	}
}

func TestWithdrawRemnantUseCase_Execute(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	annualFlow := seedRemnant(t, env)
	uc := newWithdrawUseCase(env)

	output, err := uc.Execute(ctx, WithdrawRemnantInput{
		FlowID:      annualFlow.ID,
		Amount:      usecasetest.Amount(t, "150.00"),
		Description: "Vacation",
		TargetMonth: 4,
	})
	require.NoError(t, err)

	assert.True(t, output.AccumulatedRemnant.Equal(usecasetest.Amount(t, "50.00")))
	assert.True(t, output.Withdrawal.IsApplied())
	require.NotNil(t, output.Remnant)
	assert.True(t, output.Remnant.Amount.Equal(usecasetest.Amount(t, "-150.00")))
	require.NotNil(t, output.Income)
	assert.True(t, output.Income.Amount.Equal(usecasetest.Amount(t, "150.00")))
	require.NotNil(t, output.Income.WithdrawalID)
	assert.Equal(t, output.Withdrawal.ID, *output.Income.WithdrawalID)

	accumulated, err := env.Balances.AccumulatedRemnant(ctx, annualFlow.ID)
	require.NoError(t, err)
	assert.True(t, accumulated.Equal(usecasetest.Amount(t, "50.00")))

	april := env.Book(t, annualFlow.ID, 4)
	incomes, err := env.Incomes.ListByBook(ctx, april.ID)
	require.NoError(t, err)
	require.Len(t, incomes, 1)
	assert.Equal(t, output.Income.ID, incomes[0].ID)

	// The rest can still be withdrawn, but no more
	_, err = uc.Execute(ctx, WithdrawRemnantInput{
		FlowID:      annualFlow.ID,
		Amount:      usecasetest.Amount(t, "50.01"),
		Description: "Vacation",
		TargetMonth: 4,
	})
	assert.True(t, domainerror.IsLedgerErrorCode(err, domainerror.ErrCodeWithdrawalExceedsRemnant))
}

func TestWithdrawRemnantUseCase_ApplyPending(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	annualFlow := seedRemnant(t, env)

	// A withdrawal whose side effects were never written
	withdrawal := entity.NewRemnantWithdrawal(annualFlow.ID, usecasetest.Amount(t, "30.00"), "Gift", 5, env.Clock.Now())
	require.NoError(t, env.Withdrawals.Create(ctx, withdrawal))

	uc := newWithdrawUseCase(env)
	output, err := uc.ApplyPending(ctx, ApplyPendingInput{WithdrawalID: withdrawal.ID})
	require.NoError(t, err)
	assert.True(t, output.Withdrawal.IsApplied())
	assert.NotNil(t, output.Remnant)
	assert.NotNil(t, output.Income)
	assert.True(t, output.AccumulatedRemnant.Equal(usecasetest.Amount(t, "170.00")))

	// Applying again changes nothing
	again, err := uc.ApplyPending(ctx, ApplyPendingInput{WithdrawalID: withdrawal.ID})
	require.NoError(t, err)
	assert.Nil(t, again.Remnant)
	assert.Nil(t, again.Income)
	assert.True(t, again.AccumulatedRemnant.Equal(usecasetest.Amount(t, "170.00")))

	incomes, err := env.Incomes.ListByBook(ctx, env.Book(t, annualFlow.ID, 5).ID)
	require.NoError(t, err)
	assert.Len(t, incomes, 1)

	_, err = uc.ApplyPending(ctx, ApplyPendingInput{WithdrawalID: uuid.New()})
	assert.True(t, domainerror.IsLedgerErrorCode(err, domainerror.ErrCodeWithdrawalNotFound))
}

func TestListRemnantsUseCase(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	annualFlow := seedRemnant(t, env)
	other := env.Flow(t, 2024)
	env.CarryForward(t, other, 12, "5.00")

	uc := NewListRemnantsUseCase(env.Flows, env.Remnants)

	all, err := uc.Execute(ctx, ListRemnantsInput{})
	require.NoError(t, err)
	assert.Len(t, all.Remnants, 3)
	assert.True(t, all.Total.Equal(usecasetest.Amount(t, "205.00")))

	scoped, err := uc.Execute(ctx, ListRemnantsInput{FlowID: &annualFlow.ID})
	require.NoError(t, err)
	assert.Len(t, scoped.Remnants, 2)
	assert.True(t, scoped.Total.Equal(usecasetest.Amount(t, "200.00")))
	for _, record := range scoped.Remnants {
		assert.Equal(t, 2025, record.Year)
	}
}

func TestWithdrawRemnantUseCase_TargetBookNotFound(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	annualFlow := seedRemnant(t, env)

	uc := NewWithdrawRemnantUseCase(env.Flows, missingBooks{env.Books}, env.Incomes, env.Remnants, env.Withdrawals, env.Balances, env.Transactor, env.Clock, env.Cache)
	_, err := uc.Execute(ctx, WithdrawRemnantInput{
		FlowID:      annualFlow.ID,
		Amount:      usecasetest.Amount(t, "10.00"),
		Description: "Vacation",
		TargetMonth: 4,
	})
	require.Error(t, err)
	assert.True(t, domainerror.IsLedgerErrorCode(err, domainerror.ErrCodeTargetBookNotFound))

	var ledgerErr *domainerror.LedgerError
	require.ErrorAs(t, err, &ledgerErr)
	assert.Equal(t, 4, ledgerErr.Details["month"])

	accumulated, err := env.Balances.AccumulatedRemnant(ctx, annualFlow.ID)
	require.NoError(t, err)
	assert.True(t, accumulated.Equal(usecasetest.Amount(t, "200.00")))
}

func TestWithdrawRemnantUseCase_RollsBackOnFailure(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	annualFlow := seedRemnant(t, env)

	uc := NewWithdrawRemnantUseCase(env.Flows, env.Books, failingIncomes{env.Incomes}, env.Remnants, env.Withdrawals, env.Balances, env.Transactor, env.Clock, env.Cache)
	_, err := uc.Execute(ctx, WithdrawRemnantInput{
		FlowID:      annualFlow.ID,
		Amount:      usecasetest.Amount(t, "150.00"),
		Description: "Vacation",
		TargetMonth: 4,
	})
	require.Error(t, err)
	assert.True(t, domainerror.IsLedgerErrorCode(err, domainerror.ErrCodeWithdrawalFailed))

	// Neither the withdrawal remnant nor the income survive
	records, err := env.Remnants.ListByFlow(ctx, annualFlow.ID)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	for _, record := range records {
		assert.Equal(t, entity.RemnantCarryForward, record.Remnant.Kind)
	}

	incomes, err := env.Incomes.ListByBook(ctx, env.Book(t, annualFlow.ID, 4).ID)
	require.NoError(t, err)
	assert.Empty(t, incomes)

	accumulated, err := env.Balances.AccumulatedRemnant(ctx, annualFlow.ID)
	require.NoError(t, err)
	assert.True(t, accumulated.Equal(usecasetest.Amount(t, "200.00")))
}

func TestGetRemnantUseCase(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	annualFlow := env.Flow(t, 2025)
	stored := env.CarryForward(t, annualFlow, 2, "80.00")
	uc := NewGetRemnantUseCase(env.Remnants)

	t.Run("existing remnant with its month", func(t *testing.T) {
		record, err := uc.Execute(ctx, GetRemnantInput{RemnantID: stored.ID})
		require.NoError(t, err)
		assert.Equal(t, stored.ID, record.Remnant.ID)
		assert.Equal(t, stored.BookID, record.Remnant.BookID)
		assert.True(t, record.Remnant.Amount.Equal(usecasetest.Amount(t, "80.00")))
		assert.Equal(t, annualFlow.ID, record.FlowID)
		assert.Equal(t, 2025, record.Year)
		assert.Equal(t, 2, record.Month)
	})

	t.Run("unknown remnant", func(t *testing.T) {
		_, err := uc.Execute(ctx, GetRemnantInput{RemnantID: uuid.New()})
		require.Error(t, err)
		assert.True(t, domainerror.IsLedgerErrorCode(err, domainerror.ErrCodeRemnantNotFound))
	})
}

package expense

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeledger/backend/internal/application/usecase/usecasetest"
	domainerror "github.com/homeledger/backend/internal/domain/error"
)

func TestAddExpenseUseCase_Admission(t *testing.T) {
	tests := []struct {
		name            string
		existing        []string
		amount          string
		expectedCode    domainerror.LedgerErrorCode
		expectedBalance string
		expectedDetail  string
	}{
		{
			name:            "fits in balance",
			amount:          "40.00",
			expectedBalance: "60.00",
		},
		{
			name:            "spends the exact balance",
			existing:        []string{"30.00"},
			amount:          "70.00",
			expectedBalance: "0.00",
		},
		{
			name:           "exceeds balance",
			existing:       []string{"30.00"},
			amount:         "80.00",
			expectedCode:   domainerror.ErrCodeExpenseExceedsBalance,
			expectedDetail: "70.00",
		},
		{
			name:            "zero amount is allowed",
			amount:          "0",
			expectedBalance: "100.00",
		},
		{
			name:         "three decimals rejected",
			amount:       "1.005",
			expectedCode: domainerror.ErrCodeInvalidAmount,
		},
		{
			name:         "negative rejected",
			amount:       "-1",
			expectedCode: domainerror.ErrCodeInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := usecasetest.New(t)
			ctx := context.Background()
			annualFlow := env.Flow(t, 2025)
			income := env.Income(t, env.Book(t, annualFlow.ID, 3).ID, "Salary", "100.00")
			category := env.Category(t, "Groceries")
			for _, amount := range tt.existing {
				env.Expense(t, income.ID, category.ID, "Earlier", amount)
			}

			uc := NewAddExpenseUseCase(env.Books, env.Incomes, env.Expenses, env.Categories, env.Balances, env.Transactor, env.Clock, env.Cache)
			output, err := uc.Execute(ctx, AddExpenseInput{
				IncomeID:    income.ID,
				CategoryID:  category.ID,
				Description: "Market",
				Amount:      usecasetest.Amount(t, tt.amount),
			})

			if tt.expectedCode != "" {
				require.Error(t, err)
				var ledgerErr *domainerror.LedgerError
				require.ErrorAs(t, err, &ledgerErr)
				assert.Equal(t, tt.expectedCode, ledgerErr.Code)
				if tt.expectedDetail != "" {
					assert.Equal(t, tt.expectedDetail, ledgerErr.Details["available"])
				}

				count, err := env.Expenses.CountByIncome(ctx, income.ID)
				require.NoError(t, err)
				assert.Equal(t, int64(len(tt.existing)), count)
				return
			}

			require.NoError(t, err)
			assert.True(t, output.IncomeBalance.Equal(usecasetest.Amount(t, tt.expectedBalance)),
				"balance = %s, want %s", output.IncomeBalance, tt.expectedBalance)

			balance, err := env.Balances.IncomeBalance(ctx, income)
			require.NoError(t, err)
			assert.True(t, balance.Equal(output.IncomeBalance))
			assert.False(t, balance.IsNegative())
		})
	}
}

func TestAddExpenseUseCase_ClosedBook(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	annualFlow := env.Flow(t, 2025)
	book := env.Book(t, annualFlow.ID, 2)
	income := env.Income(t, book.ID, "Salary", "100.00")
	category := env.Category(t, "Groceries")
	require.NoError(t, env.Books.MarkClosed(ctx, book.ID, env.Clock.Now()))

	uc := NewAddExpenseUseCase(env.Books, env.Incomes, env.Expenses, env.Categories, env.Balances, env.Transactor, env.Clock, env.Cache)
	_, err := uc.Execute(ctx, AddExpenseInput{
		IncomeID:    income.ID,
		CategoryID:  category.ID,
		Description: "Market",
		Amount:      usecasetest.Amount(t, "10.00"),
	})
	require.Error(t, err)
	assert.True(t, domainerror.IsLedgerErrorCode(err, domainerror.ErrCodeBookClosed))
}

func TestAddExpenseUseCase_UnknownReferences(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	annualFlow := env.Flow(t, 2025)
	income := env.Income(t, env.Book(t, annualFlow.ID, 3).ID, "Salary", "100.00")
	category := env.Category(t, "Groceries")
	uc := NewAddExpenseUseCase(env.Books, env.Incomes, env.Expenses, env.Categories, env.Balances, env.Transactor, env.Clock, env.Cache)

	_, err := uc.Execute(ctx, AddExpenseInput{IncomeID: income.ID, CategoryID: uuid.New(), Description: "Market", Amount: usecasetest.Amount(t, "1")})
	assert.True(t, domainerror.IsLedgerErrorCode(err, domainerror.ErrCodeCategoryNotFound))

	_, err = uc.Execute(ctx, AddExpenseInput{IncomeID: uuid.New(), CategoryID: category.ID, Description: "Market", Amount: usecasetest.Amount(t, "1")})
	assert.True(t, domainerror.IsLedgerErrorCode(err, domainerror.ErrCodeIncomeNotFound))
}

func TestUpdateExpenseUseCase_OwnAmountIsAvailable(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	annualFlow := env.Flow(t, 2025)
	income := env.Income(t, env.Book(t, annualFlow.ID, 3).ID, "Salary", "100.00")
	category := env.Category(t, "Groceries")
	other := env.Category(t, "Transport")
	expense := env.Expense(t, income.ID, category.ID, "Market", "60.00")
	env.Expense(t, income.ID, category.ID, "Bakery", "20.00")

	uc := NewUpdateExpenseUseCase(env.Books, env.Incomes, env.Expenses, env.Categories, env.Balances, env.Transactor, env.Cache)

	// 20.00 left plus the 60.00 being edited
	amount := usecasetest.Amount(t, "80.00")
	description := "Weekly market"
	output, err := uc.Execute(ctx, UpdateExpenseInput{
		ExpenseID:   expense.ID,
		CategoryID:  &other.ID,
		Description: &description,
		Amount:      &amount,
	})
	require.NoError(t, err)
	assert.True(t, output.IncomeBalance.IsZero())
	assert.Equal(t, other.ID, output.Expense.CategoryID)
	assert.Equal(t, "Weekly market", output.Expense.Description)

	tooMuch := usecasetest.Amount(t, "80.01")
	_, err = uc.Execute(ctx, UpdateExpenseInput{ExpenseID: expense.ID, Amount: &tooMuch})
	require.Error(t, err)
	assert.True(t, domainerror.IsLedgerErrorCode(err, domainerror.ErrCodeExpenseExceedsBalance))

	stored, err := env.Expenses.FindByID(ctx, expense.ID)
	require.NoError(t, err)
	assert.True(t, stored.Amount.Equal(amount))
}

func TestDeleteExpenseUseCase(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	annualFlow := env.Flow(t, 2025)
	income := env.Income(t, env.Book(t, annualFlow.ID, 3).ID, "Salary", "100.00")
	category := env.Category(t, "Groceries")
	expense := env.Expense(t, income.ID, category.ID, "Market", "60.00")

	uc := NewDeleteExpenseUseCase(env.Books, env.Incomes, env.Expenses, env.Budgets, env.Transactor, env.Cache)
	require.NoError(t, uc.Execute(ctx, DeleteExpenseInput{ExpenseID: expense.ID}))

	balance, err := env.Balances.IncomeBalance(ctx, income)
	require.NoError(t, err)
	assert.True(t, balance.Equal(income.Amount))

	err = uc.Execute(ctx, DeleteExpenseInput{ExpenseID: expense.ID})
	assert.True(t, domainerror.IsLedgerErrorCode(err, domainerror.ErrCodeExpenseNotFound))
}

package category

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeledger/backend/internal/application/usecase/usecasetest"
	domainerror "github.com/homeledger/backend/internal/domain/error"
)

func TestCreateCategoryUseCase(t *testing.T) {
	tests := []struct {
		name         string
		existing     []string
		input        CreateCategoryInput
		expectedCode domainerror.LedgerErrorCode
	}{
		{
			name:  "valid category",
			input: CreateCategoryInput{Name: "Groceries", Description: "Food and household"},
		},
		{
			name:  "name is trimmed",
			input: CreateCategoryInput{Name: "  Transport  "},
		},
		{
			name:         "blank name",
			input:        CreateCategoryInput{Name: "  "},
			expectedCode: domainerror.ErrCodeInvalidCategoryName,
		},
		{
			name:         "name too long",
			input:        CreateCategoryInput{Name: strings.Repeat("a", 101)},
			expectedCode: domainerror.ErrCodeInvalidCategoryName,
		},
		{
			name:         "duplicate name ignoring case",
			existing:     []string{"Groceries"},
			input:        CreateCategoryInput{Name: "groceries"},
			expectedCode: domainerror.ErrCodeCategoryNameExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := usecasetest.New(t)
			for _, name := range tt.existing {
				env.Category(t, name)
			}

			output, err := NewCreateCategoryUseCase(env.Categories, env.Clock).Execute(context.Background(), tt.input)
			if tt.expectedCode != "" {
				require.Error(t, err)
				assert.True(t, domainerror.IsLedgerErrorCode(err, tt.expectedCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.input.Name), output.Category.Name)
		})
	}
}

func TestUpdateCategoryUseCase(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	groceries := env.Category(t, "Groceries")
	env.Category(t, "Transport")
	uc := NewUpdateCategoryUseCase(env.Categories, env.Clock)

	// Renaming to itself is not a conflict
	same := "GROCERIES"
	output, err := uc.Execute(ctx, UpdateCategoryInput{CategoryID: groceries.ID, Name: &same})
	require.NoError(t, err)
	assert.Equal(t, "GROCERIES", output.Category.Name)

	taken := "transport"
	_, err = uc.Execute(ctx, UpdateCategoryInput{CategoryID: groceries.ID, Name: &taken})
	assert.True(t, domainerror.IsLedgerErrorCode(err, domainerror.ErrCodeCategoryNameExists))

	description := "Food"
	output, err = uc.Execute(ctx, UpdateCategoryInput{CategoryID: groceries.ID, Description: &description})
	require.NoError(t, err)
	assert.Equal(t, "GROCERIES", output.Category.Name)
	assert.Equal(t, "Food", output.Category.Description)

	_, err = uc.Execute(ctx, UpdateCategoryInput{CategoryID: uuid.New(), Description: &description})
	assert.True(t, domainerror.IsLedgerErrorCode(err, domainerror.ErrCodeCategoryNotFound))
}

func TestDeleteCategoryUseCase(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	annualFlow := env.Flow(t, 2025)
	income := env.Income(t, env.Book(t, annualFlow.ID, 3).ID, "Salary", "100.00")
	used := env.Category(t, "Groceries")
	unused := env.Category(t, "Transport")
	env.Expense(t, income.ID, used.ID, "Market", "10.00")
	uc := NewDeleteCategoryUseCase(env.Categories, env.Expenses, env.Transactor)

	err := uc.Execute(ctx, DeleteCategoryInput{CategoryID: used.ID})
	require.Error(t, err)
	var ledgerErr *domainerror.LedgerError
	require.ErrorAs(t, err, &ledgerErr)
	assert.Equal(t, domainerror.ErrCodeCategoryInUse, ledgerErr.Code)
	assert.Equal(t, domainerror.KindIntegrity, ledgerErr.Kind)
	assert.Equal(t, int64(1), ledgerErr.Details["expense_count"])

	require.NoError(t, uc.Execute(ctx, DeleteCategoryInput{CategoryID: unused.ID}))

	list, err := NewListCategoriesUseCase(env.Categories).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, list.Categories, 1)
	assert.Equal(t, used.ID, list.Categories[0].ID)

	err = uc.Execute(ctx, DeleteCategoryInput{CategoryID: unused.ID})
	assert.True(t, domainerror.IsLedgerErrorCode(err, domainerror.ErrCodeCategoryNotFound))
}

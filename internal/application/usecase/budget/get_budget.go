package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
	"github.com/homeledger/backend/internal/domain/entity"
)

// GetBudgetInput represents the input for reading a budget.
type GetBudgetInput struct {
	BudgetID uuid.UUID
}

// FundingIncome is an income of an open book that still has money to spend.
type FundingIncome struct {
	Income  *entity.Income
	Balance decimal.Decimal
}

// GetBudgetOutput represents a budget with the incomes that could pay for it.
type GetBudgetOutput struct {
	Budget          *entity.Budget
	PendingCost     decimal.Decimal
	Incomes         []FundingIncome
	TotalAvailable  decimal.Decimal
	FundsSufficient bool
}

// GetBudgetUseCase handles budget detail logic.
type GetBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
	incomeRepo adapter.IncomeRepository
	queries    adapter.LedgerQueryRepository
}

// NewGetBudgetUseCase creates a new GetBudgetUseCase instance.
func NewGetBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	incomeRepo adapter.IncomeRepository,
	queries adapter.LedgerQueryRepository,
) *GetBudgetUseCase {
	return &GetBudgetUseCase{
		budgetRepo: budgetRepo,
		incomeRepo: incomeRepo,
		queries:    queries,
	}
}

// Execute reads the budget and the open incomes with a positive balance.
func (uc *GetBudgetUseCase) Execute(ctx context.Context, input GetBudgetInput) (*GetBudgetOutput, error) {
	budget, err := uc.budgetRepo.FindByID(ctx, input.BudgetID)
	if err != nil {
		return nil, ledger.Translate(err, "find budget")
	}

	incomes, err := uc.incomeRepo.ListInOpenBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open incomes: %w", err)
	}

	ids := make([]uuid.UUID, len(incomes))
	for i, income := range incomes {
		ids[i] = income.ID
	}
	spent, err := uc.queries.ExpenseTotalsByIncomes(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to sum income expenses: %w", err)
	}

	output := &GetBudgetOutput{
		Budget:         budget,
		PendingCost:    budget.PendingCost(),
		Incomes:        make([]FundingIncome, 0, len(incomes)),
		TotalAvailable: decimal.Zero,
	}
	for _, income := range incomes {
		balance := income.Amount.Sub(spent[income.ID].Total)
		if !balance.IsPositive() {
			continue
		}
		output.Incomes = append(output.Incomes, FundingIncome{Income: income, Balance: balance})
		output.TotalAvailable = output.TotalAvailable.Add(balance)
	}
	output.FundsSufficient = output.TotalAvailable.GreaterThanOrEqual(output.PendingCost)

	return output, nil
}

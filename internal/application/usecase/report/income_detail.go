package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
	"github.com/homeledger/backend/internal/domain/entity"
)

// IncomeDetailInput represents the input for the income detail.
type IncomeDetailInput struct {
	IncomeID uuid.UUID
}

// CategoryExpenses groups the expenses of one category.
type CategoryExpenses struct {
	Category *entity.ExpenseCategory
	Expenses []*entity.Expense
	Total    decimal.Decimal
}

// IncomeDetailOutput represents an income with its expenses grouped by category.
type IncomeDetailOutput struct {
	Income        *entity.Income
	Book          *entity.MonthlyIncomeBook
	Categories    []CategoryExpenses
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal
}

// IncomeDetailUseCase builds the income detail.
type IncomeDetailUseCase struct {
	bookRepo     adapter.BookRepository
	incomeRepo   adapter.IncomeRepository
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
}

// NewIncomeDetailUseCase creates a new IncomeDetailUseCase instance.
func NewIncomeDetailUseCase(
	bookRepo adapter.BookRepository,
	incomeRepo adapter.IncomeRepository,
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
) *IncomeDetailUseCase {
	return &IncomeDetailUseCase{
		bookRepo:     bookRepo,
		incomeRepo:   incomeRepo,
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute builds the detail. Categories are ordered by name.
func (uc *IncomeDetailUseCase) Execute(ctx context.Context, input IncomeDetailInput) (*IncomeDetailOutput, error) {
	income, err := uc.incomeRepo.FindByID(ctx, input.IncomeID)
	if err != nil {
		return nil, ledger.Translate(err, "find income")
	}
	book, err := uc.bookRepo.FindByID(ctx, income.BookID)
	if err != nil {
		return nil, ledger.Translate(err, "find book")
	}

	expenses, err := uc.expenseRepo.ListByIncome(ctx, income.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	byID := make(map[uuid.UUID]*entity.ExpenseCategory, len(categories))
	for _, category := range categories {
		byID[category.ID] = category
	}

	groups := make(map[uuid.UUID]*CategoryExpenses)
	total := decimal.Zero
	for _, expense := range expenses {
		group, ok := groups[expense.CategoryID]
		if !ok {
			group = &CategoryExpenses{Category: byID[expense.CategoryID], Total: decimal.Zero}
			groups[expense.CategoryID] = group
		}
		group.Expenses = append(group.Expenses, expense)
		group.Total = group.Total.Add(expense.Amount)
		total = total.Add(expense.Amount)
	}

	output := &IncomeDetailOutput{
		Income:        income,
		Book:          book,
		Categories:    make([]CategoryExpenses, 0, len(groups)),
		TotalExpenses: total,
		Balance:       income.Amount.Sub(total),
	}
	for _, group := range groups {
		output.Categories = append(output.Categories, *group)
	}
	sort.Slice(output.Categories, func(i, j int) bool {
		return categoryName(output.Categories[i].Category) < categoryName(output.Categories[j].Category)
	})

	return output, nil
}

func categoryName(category *entity.ExpenseCategory) string {
	if category == nil {
		return ""
	}
	return category.Name
}

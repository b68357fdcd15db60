package dto

import (
	"github.com/homeledger/backend/internal/application/usecase/report"
	"github.com/homeledger/backend/internal/domain/entity"
	"github.com/homeledger/backend/internal/domain/valueobject"
)

// CreateIncomeRequest represents the request body for adding an income.
type CreateIncomeRequest struct {
	Description string      `json:"description" binding:"required"`
	Amount      AmountField `json:"amount" binding:"required"`
}

// CreateExpenseRequest represents the request body for adding an expense.
type CreateExpenseRequest struct {
	CategoryID  string      `json:"category_id" binding:"required"`
	Description string      `json:"description" binding:"required"`
	Amount      AmountField `json:"amount" binding:"required"`
}

// UpdateExpenseRequest represents the request body for editing an expense. Omitted fields are kept.
type UpdateExpenseRequest struct {
	CategoryID  *string      `json:"category_id"`
	Description *string      `json:"description"`
	Amount      *AmountField `json:"amount"`
}

// IncomeResponse represents an income.
type IncomeResponse struct {
	ID           string  `json:"id"`
	BookID       string  `json:"book_id"`
	Description  string  `json:"description"`
	Amount       Money   `json:"amount"`
	WithdrawalID *string `json:"withdrawal_id,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// ExpenseResponse represents an expense.
type ExpenseResponse struct {
	ID          string `json:"id"`
	IncomeID    string `json:"income_id"`
	CategoryID  string `json:"category_id"`
	Description string `json:"description"`
	Amount      Money  `json:"amount"`
	CreatedAt   string `json:"created_at"`
}

// ExpenseWithBalanceResponse represents an expense with the remaining balance of its income.
type ExpenseWithBalanceResponse struct {
	Expense       ExpenseResponse `json:"expense"`
	IncomeBalance Money           `json:"income_balance"`
}

// IncomeSummaryResponse represents an income within a book detail.
type IncomeSummaryResponse struct {
	IncomeResponse
	TotalExpenses Money `json:"total_expenses"`
	Balance       Money `json:"balance"`
	ExpenseCount  int64 `json:"expense_count"`
}

// BookDetailResponse represents a monthly book with its incomes.
type BookDetailResponse struct {
	BookResponse
	Year            int                     `json:"year"`
	Totals          TotalsResponse          `json:"totals"`
	Incomes         []IncomeSummaryResponse `json:"incomes"`
	CarryForward    *RemnantResponse        `json:"carry_forward,omitempty"`
	PreviousRemnant *RemnantResponse        `json:"previous_remnant,omitempty"`
}

// CategoryExpensesResponse groups the expenses of one category.
type CategoryExpensesResponse struct {
	CategoryID   string            `json:"category_id"`
	CategoryName string            `json:"category_name"`
	Total        Money             `json:"total"`
	Expenses     []ExpenseResponse `json:"expenses"`
}

// IncomeDetailResponse represents an income with its expenses grouped by category.
type IncomeDetailResponse struct {
	IncomeResponse
	Book          BookResponse               `json:"book"`
	TotalExpenses Money                      `json:"total_expenses"`
	Balance       Money                      `json:"balance"`
	Categories    []CategoryExpensesResponse `json:"categories"`
}

// ToIncomeResponse converts an Income entity to an IncomeResponse DTO.
func ToIncomeResponse(i *entity.Income, mf valueobject.MoneyFormatter) IncomeResponse {
	response := IncomeResponse{
		ID:          i.ID.String(),
		BookID:      i.BookID.String(),
		Description: i.Description,
		Amount:      NewMoney(i.Amount, mf),
		CreatedAt:   formatTime(i.CreatedAt),
	}
	if i.WithdrawalID != nil {
		id := i.WithdrawalID.String()
		response.WithdrawalID = &id
	}
	return response
}

// ToExpenseResponse converts an Expense entity to an ExpenseResponse DTO.
func ToExpenseResponse(e *entity.Expense, mf valueobject.MoneyFormatter) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID.String(),
		IncomeID:    e.IncomeID.String(),
		CategoryID:  e.CategoryID.String(),
		Description: e.Description,
		Amount:      NewMoney(e.Amount, mf),
		CreatedAt:   formatTime(e.CreatedAt),
	}
}

// ToBookDetailResponse converts the book detail output to a DTO.
func ToBookDetailResponse(output *report.BookDetailOutput, mf valueobject.MoneyFormatter) BookDetailResponse {
	incomes := make([]IncomeSummaryResponse, 0, len(output.Incomes))
	for _, s := range output.Incomes {
		incomes = append(incomes, IncomeSummaryResponse{
			IncomeResponse: ToIncomeResponse(s.Income, mf),
			TotalExpenses:  NewMoney(s.TotalExpenses, mf),
			Balance:        NewMoney(s.Balance, mf),
			ExpenseCount:   s.ExpenseCount,
		})
	}

	response := BookDetailResponse{
		BookResponse: ToBookResponse(output.Book),
		Year:         output.Year,
		Totals:       ToTotalsResponse(output.Totals, mf),
		Incomes:      incomes,
	}
	if output.CarryForward != nil {
		r := ToRemnantResponse(output.CarryForward, mf)
		response.CarryForward = &r
	}
	if output.PreviousRemnant != nil {
		r := ToRemnantResponse(output.PreviousRemnant, mf)
		response.PreviousRemnant = &r
	}
	return response
}

// ToIncomeDetailResponse converts the income detail output to a DTO.
func ToIncomeDetailResponse(output *report.IncomeDetailOutput, mf valueobject.MoneyFormatter) IncomeDetailResponse {
	categories := make([]CategoryExpensesResponse, 0, len(output.Categories))
	for _, group := range output.Categories {
		expenses := make([]ExpenseResponse, 0, len(group.Expenses))
		for _, e := range group.Expenses {
			expenses = append(expenses, ToExpenseResponse(e, mf))
		}
		item := CategoryExpensesResponse{
			Total:    NewMoney(group.Total, mf),
			Expenses: expenses,
		}
		if group.Category != nil {
			item.CategoryID = group.Category.ID.String()
			item.CategoryName = group.Category.Name
		} else if len(group.Expenses) > 0 {
			item.CategoryID = group.Expenses[0].CategoryID.String()
		}
		categories = append(categories, item)
	}

	return IncomeDetailResponse{
		IncomeResponse: ToIncomeResponse(output.Income, mf),
		Book:           ToBookResponse(output.Book),
		TotalExpenses:  NewMoney(output.TotalExpenses, mf),
		Balance:        NewMoney(output.Balance, mf),
		Categories:     categories,
	}
}

package dto

import (
	"github.com/homeledger/backend/internal/application/usecase/budget"
	"github.com/homeledger/backend/internal/domain/entity"
	"github.com/homeledger/backend/internal/domain/valueobject"
)

// CreateBudgetRequest represents the request body for creating a budget.
type CreateBudgetRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateBudgetItemRequest represents the request body for adding a budget item.
type CreateBudgetItemRequest struct {
	Name        string      `json:"name" binding:"required"`
	URL         string      `json:"url"`
	Description string      `json:"description"`
	Cost        AmountField `json:"cost" binding:"required"`
}

// UpdateBudgetItemRequest represents the request body for editing a budget item. Omitted fields are kept.
type UpdateBudgetItemRequest struct {
	Name        *string      `json:"name"`
	URL         *string      `json:"url"`
	Description *string      `json:"description"`
	Cost        *AmountField `json:"cost"`
}

// ExportBudgetItemRequest represents the request body for exporting a budget item into expenses.
type ExportBudgetItemRequest struct {
	IncomeIDs []string `json:"income_ids" binding:"required"`
}

// BudgetItemResponse represents a budget item.
type BudgetItemResponse struct {
	ID              string  `json:"id"`
	BudgetID        string  `json:"budget_id"`
	Name            string  `json:"name"`
	URL             string  `json:"url"`
	Description     string  `json:"description"`
	Cost            Money   `json:"cost"`
	Exported        bool    `json:"exported"`
	ExportExpenseID *string `json:"export_expense_id,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// BudgetResponse represents a budget with its items.
type BudgetResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	State       string               `json:"state"`
	CreatedAt   string               `json:"created_at"`
	PendingCost Money                `json:"pending_cost"`
	Items       []BudgetItemResponse `json:"items"`
}

// BudgetListResponse represents the budget list.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// FundingIncomeResponse is an open income that can pay for budget items.
type FundingIncomeResponse struct {
	IncomeResponse
	Balance Money `json:"balance"`
}

// BudgetDetailResponse represents a budget with the incomes able to fund it.
type BudgetDetailResponse struct {
	BudgetResponse
	Incomes         []FundingIncomeResponse `json:"incomes"`
	TotalAvailable  Money                   `json:"total_available"`
	FundsSufficient bool                    `json:"funds_sufficient"`
}

// ExportBudgetItemResponse represents the result of exporting a budget item.
type ExportBudgetItemResponse struct {
	Item     BudgetItemResponse `json:"item"`
	Expenses []ExpenseResponse  `json:"expenses"`
}

// ToBudgetItemResponse converts a BudgetItem entity to a DTO.
func ToBudgetItemResponse(item *entity.BudgetItem, mf valueobject.MoneyFormatter) BudgetItemResponse {
	response := BudgetItemResponse{
		ID:          item.ID.String(),
		BudgetID:    item.BudgetID.String(),
		Name:        item.Name,
		URL:         item.URL,
		Description: item.Description,
		Cost:        NewMoney(item.Cost, mf),
		Exported:    item.Exported,
		CreatedAt:   formatTime(item.CreatedAt),
	}
	if item.ExportExpenseID != nil {
		id := item.ExportExpenseID.String()
		response.ExportExpenseID = &id
	}
	return response
}

// ToBudgetResponse converts a Budget entity to a DTO.
func ToBudgetResponse(b *entity.Budget, mf valueobject.MoneyFormatter) BudgetResponse {
	items := make([]BudgetItemResponse, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, ToBudgetItemResponse(item, mf))
	}
	return BudgetResponse{
		ID:          b.ID.String(),
		Name:        b.Name,
		State:       string(b.State),
		CreatedAt:   formatTime(b.CreatedAt),
		PendingCost: NewMoney(b.PendingCost(), mf),
		Items:       items,
	}
}

// ToBudgetListResponse converts budgets to a DTO.
func ToBudgetListResponse(budgets []*entity.Budget, mf valueobject.MoneyFormatter) BudgetListResponse {
	items := make([]BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		items = append(items, ToBudgetResponse(b, mf))
	}
	return BudgetListResponse{Budgets: items}
}

// ToBudgetDetailResponse converts the budget detail output to a DTO.
func ToBudgetDetailResponse(output *budget.GetBudgetOutput, mf valueobject.MoneyFormatter) BudgetDetailResponse {
	incomes := make([]FundingIncomeResponse, 0, len(output.Incomes))
	for _, funding := range output.Incomes {
		incomes = append(incomes, FundingIncomeResponse{
			IncomeResponse: ToIncomeResponse(funding.Income, mf),
			Balance:        NewMoney(funding.Balance, mf),
		})
	}
	return BudgetDetailResponse{
		BudgetResponse:  ToBudgetResponse(output.Budget, mf),
		Incomes:         incomes,
		TotalAvailable:  NewMoney(output.TotalAvailable, mf),
		FundsSufficient: output.FundsSufficient,
	}
}

// ToExportBudgetItemResponse converts the export output to a DTO.
func ToExportBudgetItemResponse(output *budget.ExportItemOutput, mf valueobject.MoneyFormatter) ExportBudgetItemResponse {
	expenses := make([]ExpenseResponse, 0, len(output.Expenses))
	for _, e := range output.Expenses {
		expenses = append(expenses, ToExpenseResponse(e, mf))
	}
	return ExportBudgetItemResponse{
		Item:     ToBudgetItemResponse(output.Item, mf),
		Expenses: expenses,
	}
}

package dto

import (
	"github.com/homeledger/backend/internal/application/usecase/report"
	"github.com/homeledger/backend/internal/domain/valueobject"
)

// MonthReportResponse represents one month of the annual report.
type MonthReportResponse struct {
	Month    int    `json:"month"`
	Name     string `json:"name"`
	Income   Money  `json:"income"`
	Expenses Money  `json:"expenses"`
	Balance  Money  `json:"balance"`
}

// CategoryReportResponse represents the monthly spending of one category.
type CategoryReportResponse struct {
	CategoryID string  `json:"category_id"`
	Name       string  `json:"name"`
	Monthly    []Money `json:"monthly"`
	Total      Money   `json:"total"`
}

// CategoryAmountResponse represents a category sum within an income.
type CategoryAmountResponse struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Total      Money  `json:"total"`
}

// IncomeReportResponse represents an income in the annual report.
type IncomeReportResponse struct {
	IncomeID      string                   `json:"income_id"`
	Month         int                      `json:"month"`
	MonthName     string                   `json:"month_name"`
	Description   string                   `json:"description"`
	Amount        Money                    `json:"amount"`
	Expenses      []CategoryAmountResponse `json:"expenses"`
	TotalExpenses Money                    `json:"total_expenses"`
}

// AnnualReportResponse represents the annual report of a flow.
type AnnualReportResponse struct {
	FlowID        string                   `json:"flow_id"`
	Year          int                      `json:"year"`
	State         string                   `json:"state"`
	Months        []MonthReportResponse    `json:"months"`
	Categories    []CategoryReportResponse `json:"expenses_by_category"`
	Incomes       []IncomeReportResponse   `json:"incomes"`
	TotalIncome   Money                    `json:"total_income"`
	TotalExpenses Money                    `json:"total_expenses"`
	Balance       Money                    `json:"balance"`
}

// DashboardResponse represents the dashboard statistics.
type DashboardResponse struct {
	Year               int     `json:"year"`
	FlowID             *string `json:"flow_id,omitempty"`
	AccumulatedRemnant Money   `json:"accumulated_remnant"`
}

// ToAnnualReportResponse converts the annual report to a DTO.
func ToAnnualReportResponse(r *report.AnnualReport, mf valueobject.MoneyFormatter) AnnualReportResponse {
	months := make([]MonthReportResponse, 0, len(r.Months))
	for _, m := range r.Months {
		months = append(months, MonthReportResponse{
			Month:    m.Month,
			Name:     m.Name,
			Income:   NewMoney(m.Income, mf),
			Expenses: NewMoney(m.Expenses, mf),
			Balance:  NewMoney(m.Income.Sub(m.Expenses), mf),
		})
	}

	categories := make([]CategoryReportResponse, 0, len(r.Categories))
	for _, c := range r.Categories {
		monthly := make([]Money, 0, len(c.Monthly))
		for _, amount := range c.Monthly {
			monthly = append(monthly, NewMoney(amount, mf))
		}
		categories = append(categories, CategoryReportResponse{
			CategoryID: c.CategoryID.String(),
			Name:       c.Name,
			Monthly:    monthly,
			Total:      NewMoney(c.Total, mf),
		})
	}

	incomes := make([]IncomeReportResponse, 0, len(r.Incomes))
	for _, i := range r.Incomes {
		expenses := make([]CategoryAmountResponse, 0, len(i.Expenses))
		for _, e := range i.Expenses {
			expenses = append(expenses, CategoryAmountResponse{
				CategoryID: e.CategoryID.String(),
				Name:       e.Name,
				Total:      NewMoney(e.Total, mf),
			})
		}
		incomes = append(incomes, IncomeReportResponse{
			IncomeID:      i.IncomeID.String(),
			Month:         i.Month,
			MonthName:     i.MonthName,
			Description:   i.Description,
			Amount:        NewMoney(i.Amount, mf),
			Expenses:      expenses,
			TotalExpenses: NewMoney(i.TotalExpenses, mf),
		})
	}

	return AnnualReportResponse{
		FlowID:        r.FlowID.String(),
		Year:          r.Year,
		State:         string(r.State),
		Months:        months,
		Categories:    categories,
		Incomes:       incomes,
		TotalIncome:   NewMoney(r.TotalIncome, mf),
		TotalExpenses: NewMoney(r.TotalExpenses, mf),
		Balance:       NewMoney(r.Balance(), mf),
	}
}

// ToDashboardResponse converts the dashboard output to a DTO.
func ToDashboardResponse(output *report.DashboardOutput, mf valueobject.MoneyFormatter) DashboardResponse {
	response := DashboardResponse{
		Year:               output.Year,
		AccumulatedRemnant: NewMoney(output.AccumulatedRemnant, mf),
	}
	if output.FlowID != nil {
		id := output.FlowID.String()
		response.FlowID = &id
	}
	return response
}

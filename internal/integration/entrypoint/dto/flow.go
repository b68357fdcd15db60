package dto

import (
	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/book"
	"github.com/homeledger/backend/internal/application/usecase/flow"
	"github.com/homeledger/backend/internal/application/usecase/report"
	"github.com/homeledger/backend/internal/domain/entity"
	"github.com/homeledger/backend/internal/domain/valueobject"
)

// CreateFlowRequest represents the request body for creating an annual flow.
type CreateFlowRequest struct {
	Year int `json:"year" binding:"required"`
}

// BookResponse represents a monthly income book.
type BookResponse struct {
	ID        string  `json:"id"`
	FlowID    string  `json:"flow_id"`
	Month     int     `json:"month"`
	MonthName string  `json:"month_name"`
	State     string  `json:"state"`
	ClosedAt  *string `json:"closed_at,omitempty"`
}

// FlowResponse represents an annual flow with its books.
type FlowResponse struct {
	ID        string         `json:"id"`
	Year      int            `json:"year"`
	State     string         `json:"state"`
	CreatedAt string         `json:"created_at"`
	Books     []BookResponse `json:"books"`
}

// FlowListItemResponse represents one flow in the flow list.
type FlowListItemResponse struct {
	ID                 string `json:"id"`
	Year               int    `json:"year"`
	State              string `json:"state"`
	ClosedMonths       int    `json:"closed_months"`
	AccumulatedRemnant Money  `json:"accumulated_remnant"`
}

// FlowListResponse represents the flow list.
type FlowListResponse struct {
	Flows []FlowListItemResponse `json:"flows"`
}

// TotalsResponse holds income, expenses and balance of a period.
type TotalsResponse struct {
	Income   Money `json:"income"`
	Expenses Money `json:"expenses"`
	Balance  Money `json:"balance"`
}

// BookSummaryResponse represents a month within the flow summary.
type BookSummaryResponse struct {
	BookResponse
	IsCurrent bool           `json:"is_current"`
	Totals    TotalsResponse `json:"totals"`
}

// FlowSummaryResponse represents a flow with its twelve months and year totals.
type FlowSummaryResponse struct {
	ID                 string                `json:"id"`
	Year               int                   `json:"year"`
	State              string                `json:"state"`
	ClosedMonths       int                   `json:"closed_months"`
	AccumulatedRemnant Money                 `json:"accumulated_remnant"`
	Totals             TotalsResponse        `json:"totals"`
	Books              []BookSummaryResponse `json:"books"`
}

// CloseFlowResponse represents the result of closing a flow.
type CloseFlowResponse struct {
	FlowID string `json:"flow_id"`
	Year   int    `json:"year"`
	State  string `json:"state"`
}

// CloseBookResponse represents the result of closing a month.
type CloseBookResponse struct {
	BookID        string           `json:"book_id"`
	FlowID        string           `json:"flow_id"`
	Month         string           `json:"month"`
	RemnantAmount Money            `json:"remnant_amount"`
	Remnant       *RemnantResponse `json:"remnant,omitempty"`
	FlowClosed    bool             `json:"flow_closed"`
}

// ToBookResponse converts a MonthlyIncomeBook entity to a BookResponse DTO.
func ToBookResponse(b *entity.MonthlyIncomeBook) BookResponse {
	return BookResponse{
		ID:        b.ID.String(),
		FlowID:    b.FlowID.String(),
		Month:     b.Month,
		MonthName: b.MonthName(),
		State:     string(b.State),
		ClosedAt:  formatTimePtr(b.ClosedAt),
	}
}

// ToFlowResponse converts an AnnualFlow entity to a FlowResponse DTO.
func ToFlowResponse(f *entity.AnnualFlow) FlowResponse {
	books := make([]BookResponse, 0, len(f.Books))
	for _, b := range f.Books {
		books = append(books, ToBookResponse(b))
	}
	return FlowResponse{
		ID:        f.ID.String(),
		Year:      f.Year,
		State:     string(f.State),
		CreatedAt: formatTime(f.CreatedAt),
		Books:     books,
	}
}

// ToFlowListResponse converts the flow list output to a DTO.
func ToFlowListResponse(output *flow.ListFlowsOutput, mf valueobject.MoneyFormatter) FlowListResponse {
	flows := make([]FlowListItemResponse, 0, len(output.Flows))
	for _, item := range output.Flows {
		flows = append(flows, FlowListItemResponse{
			ID:                 item.Flow.ID.String(),
			Year:               item.Flow.Year,
			State:              string(item.Flow.State),
			ClosedMonths:       item.ClosedMonths,
			AccumulatedRemnant: NewMoney(item.AccumulatedRemnant, mf),
		})
	}
	return FlowListResponse{Flows: flows}
}

// ToTotalsResponse converts period totals to a DTO.
func ToTotalsResponse(t adapter.PeriodTotals, mf valueobject.MoneyFormatter) TotalsResponse {
	return TotalsResponse{
		Income:   NewMoney(t.Income, mf),
		Expenses: NewMoney(t.Expenses, mf),
		Balance:  NewMoney(t.Balance(), mf),
	}
}

// ToFlowSummaryResponse converts the flow summary output to a DTO.
func ToFlowSummaryResponse(output *report.FlowSummaryOutput, mf valueobject.MoneyFormatter) FlowSummaryResponse {
	books := make([]BookSummaryResponse, 0, len(output.Books))
	for _, b := range output.Books {
		books = append(books, BookSummaryResponse{
			BookResponse: ToBookResponse(b.Book),
			IsCurrent:    b.IsCurrent,
			Totals:       ToTotalsResponse(b.Totals, mf),
		})
	}
	return FlowSummaryResponse{
		ID:                 output.Flow.ID.String(),
		Year:               output.Flow.Year,
		State:              string(output.Flow.State),
		ClosedMonths:       output.ClosedMonths,
		AccumulatedRemnant: NewMoney(output.AccumulatedRemnant, mf),
		Totals:             ToTotalsResponse(output.YearTotals, mf),
		Books:              books,
	}
}

// ToCloseBookResponse converts the month-close output to a DTO.
func ToCloseBookResponse(output *book.CloseBookOutput, mf valueobject.MoneyFormatter) CloseBookResponse {
	response := CloseBookResponse{
		BookID:        output.BookID.String(),
		FlowID:        output.FlowID.String(),
		Month:         output.Month.String(),
		RemnantAmount: NewMoney(output.RemnantAmount, mf),
		FlowClosed:    output.FlowClosed,
	}
	if output.Remnant != nil {
		remnant := ToRemnantResponse(output.Remnant, mf)
		response.Remnant = &remnant
	}
	return response
}

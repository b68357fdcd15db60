package dto

import (
	"github.com/shopspring/decimal"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/remnant"
	"github.com/homeledger/backend/internal/domain/entity"
	"github.com/homeledger/backend/internal/domain/valueobject"
)

// WithdrawRemnantRequest represents the request body for withdrawing from the accumulated remnant.
type WithdrawRemnantRequest struct {
	Amount      AmountField `json:"amount" binding:"required"`
	Description string      `json:"description" binding:"required"`
	TargetMonth *int        `json:"target_month"`
}

// RemnantResponse represents a remnant entry.
type RemnantResponse struct {
	ID            string  `json:"id"`
	BookID        string  `json:"book_id"`
	Kind          string  `json:"kind"`
	Description   string  `json:"description"`
	Amount        Money   `json:"amount"`
	WithdrawalID  *string `json:"withdrawal_id,omitempty"`
	TransferredAt string  `json:"transferred_at"`
}

// RemnantListItemResponse represents a remnant entry with the month it belongs to.
type RemnantListItemResponse struct {
	RemnantResponse
	FlowID    string `json:"flow_id"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthName string `json:"month_name"`
}

// RemnantListResponse represents the remnant list and its total.
type RemnantListResponse struct {
	Remnants []RemnantListItemResponse `json:"remnants"`
	Total    Money                     `json:"total"`
}

// WithdrawalResponse represents a remnant withdrawal.
type WithdrawalResponse struct {
	ID          string  `json:"id"`
	FlowID      string  `json:"flow_id"`
	Amount      Money   `json:"amount"`
	Description string  `json:"description"`
	TargetMonth int     `json:"target_month"`
	State       string  `json:"state"`
	WithdrawnAt string  `json:"withdrawn_at"`
	AppliedAt   *string `json:"applied_at,omitempty"`
}

// WithdrawRemnantResponse represents the result of a withdrawal.
type WithdrawRemnantResponse struct {
	Withdrawal         WithdrawalResponse `json:"withdrawal"`
	Remnant            *RemnantResponse   `json:"remnant,omitempty"`
	Income             *IncomeResponse    `json:"income,omitempty"`
	AccumulatedRemnant Money              `json:"accumulated_remnant"`
}

// ToRemnantResponse converts a Remnant entity to a RemnantResponse DTO.
func ToRemnantResponse(r *entity.Remnant, mf valueobject.MoneyFormatter) RemnantResponse {
	response := RemnantResponse{
		ID:            r.ID.String(),
		BookID:        r.BookID.String(),
		Kind:          string(r.Kind),
		Description:   r.Description,
		Amount:        NewMoney(r.Amount, mf),
		TransferredAt: formatTime(r.TransferredAt),
	}
	if r.WithdrawalID != nil {
		id := r.WithdrawalID.String()
		response.WithdrawalID = &id
	}
	return response
}

// ToRemnantListResponse converts remnant records and their total to a DTO.
func ToRemnantListResponse(records []*adapter.RemnantRecord, total decimal.Decimal, mf valueobject.MoneyFormatter) RemnantListResponse {
	items := make([]RemnantListItemResponse, 0, len(records))
	for _, record := range records {
		items = append(items, ToRemnantListItemResponse(record, mf))
	}
	return RemnantListResponse{Remnants: items, Total: NewMoney(total, mf)}
}

// ToRemnantListItemResponse converts a remnant record to a response carrying its book month.
func ToRemnantListItemResponse(record *adapter.RemnantRecord, mf valueobject.MoneyFormatter) RemnantListItemResponse {
	return RemnantListItemResponse{
		RemnantResponse: ToRemnantResponse(record.Remnant, mf),
		FlowID:          record.FlowID.String(),
		Year:            record.Year,
		Month:           record.Month,
		MonthName:       valueobject.MonthName(record.Month),
	}
}

// ToWithdrawalResponse converts a RemnantWithdrawal entity to a DTO.
func ToWithdrawalResponse(w *entity.RemnantWithdrawal, mf valueobject.MoneyFormatter) WithdrawalResponse {
	return WithdrawalResponse{
		ID:          w.ID.String(),
		FlowID:      w.FlowID.String(),
		Amount:      NewMoney(w.Amount, mf),
		Description: w.Description,
		TargetMonth: w.TargetMonth,
		State:       string(w.State),
		WithdrawnAt: formatTime(w.WithdrawnAt),
		AppliedAt:   formatTimePtr(w.AppliedAt),
	}
}

// ToWithdrawRemnantResponse converts the withdrawal output to a DTO.
func ToWithdrawRemnantResponse(output *remnant.WithdrawRemnantOutput, mf valueobject.MoneyFormatter) WithdrawRemnantResponse {
	response := WithdrawRemnantResponse{
		Withdrawal:         ToWithdrawalResponse(output.Withdrawal, mf),
		AccumulatedRemnant: NewMoney(output.AccumulatedRemnant, mf),
	}
	if output.Remnant != nil {
		r := ToRemnantResponse(output.Remnant, mf)
		response.Remnant = &r
	}
	if output.Income != nil {
		i := ToIncomeResponse(output.Income, mf)
		response.Income = &i
	}
	return response
}

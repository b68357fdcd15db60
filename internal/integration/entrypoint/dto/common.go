package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/homeledger/backend/internal/domain/valueobject"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// Money carries an amount in its exact form ("50000.00") and its display form ("$50.000").
type Money struct {
	Amount  string `json:"amount"`
	Display string `json:"display"`
}

// NewMoney renders an amount with the given formatter.
func NewMoney(amount decimal.Decimal, f valueobject.MoneyFormatter) Money {
	return Money{
		Amount:  valueobject.FormatAmount(amount),
		Display: f.Format(amount),
	}
}

// AmountField accepts an amount sent either as a JSON string ("12,50") or as a JSON number.
type AmountField string

// UnmarshalJSON implements json.Unmarshaler.
func (a *AmountField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = AmountField(n.String())
	return nil
}

// Parse converts the field to a validated amount.
func (a AmountField) Parse() (decimal.Decimal, error) {
	return valueobject.ParseAmount(string(a))
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

package dto

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeledger/backend/internal/domain/valueobject"
)

func TestAmountField_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
		wantErr  bool
	}{
		{name: "string with dot", payload: `{"amount":"12.50"}`, expected: "12.5"},
		{name: "string with comma", payload: `{"amount":"12,50"}`, expected: "12.5"},
		{name: "integer number", payload: `{"amount":40}`, expected: "40"},
		{name: "decimal number", payload: `{"amount":40.25}`, expected: "40.25"},
		{name: "too precise", payload: `{"amount":"1.005"}`, wantErr: true},
		{name: "null", payload: `{"amount":null}`, wantErr: true},
		{name: "text", payload: `{"amount":"abc"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreateIncomeRequest
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &req))

			amount, err := req.Amount.Parse()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, amount.Equal(decimal.RequireFromString(tt.expected)), "got %s", amount)
		})
	}
}

func TestAmountField_RejectsObjects(t *testing.T) {
	var req CreateIncomeRequest
	assert.Error(t, json.Unmarshal([]byte(`{"amount":{"value":1}}`), &req))
}

func TestNewMoney(t *testing.T) {
	money := NewMoney(decimal.RequireFromString("50000"), valueobject.NewMoneyFormatter("."))
	assert.Equal(t, Money{Amount: "50000.00", Display: "$50.000"}, money)
}

package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeledger/backend/internal/domain/valueobject"
)

func TestNewRemnant(t *testing.T) {
	now := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)
	bookID := uuid.New()
	withdrawal := NewRemnantWithdrawal(uuid.New(), decimal.RequireFromString("150.00"), " Vacation ", 4, now)

	tests := []struct {
		name                string
		remnant             *Remnant
		expectedKind        RemnantKind
		expectedAmount      string
		expectedDescription string
		expectWithdrawal    bool
	}{
		{
			name:                "carry forward",
			remnant:             NewCarryForwardRemnant(bookID, decimal.RequireFromString("60.00"), valueobject.MonthKey{Year: 2025, Month: 3}, now),
			expectedKind:        RemnantCarryForward,
			expectedAmount:      "60.00",
			expectedDescription: "Remnant of March 2025",
		},
		{
			name:                "withdrawal is negative",
			remnant:             NewWithdrawalRemnant(bookID, withdrawal, now),
			expectedKind:        RemnantKindWithdrawal,
			expectedAmount:      "-150.00",
			expectedDescription: "Remnant withdrawal: Vacation",
			expectWithdrawal:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, bookID, tt.remnant.BookID)
			assert.Equal(t, tt.expectedKind, tt.remnant.Kind)
			assert.True(t, tt.remnant.Amount.Equal(decimal.RequireFromString(tt.expectedAmount)),
				"amount = %s, want %s", tt.remnant.Amount, tt.expectedAmount)
			assert.Equal(t, tt.expectedDescription, tt.remnant.Description)
			assert.Equal(t, now, tt.remnant.TransferredAt)
			if tt.expectWithdrawal {
				require.NotNil(t, tt.remnant.WithdrawalID)
				assert.Equal(t, withdrawal.ID, *tt.remnant.WithdrawalID)
			} else {
				assert.Nil(t, tt.remnant.WithdrawalID)
			}
		})
	}
}

func TestRemnantWithdrawal_Income(t *testing.T) {
	now := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)
	bookID := uuid.New()
	withdrawal := NewRemnantWithdrawal(uuid.New(), decimal.RequireFromString("150.00"), "Vacation", 4, now)

	assert.False(t, withdrawal.IsApplied())

	income := withdrawal.Income(bookID, now)
	assert.Equal(t, bookID, income.BookID)
	assert.True(t, income.Amount.Equal(withdrawal.Amount))
	assert.Equal(t, "Income from remnants: Vacation", income.Description)
	require.NotNil(t, income.WithdrawalID)
	assert.Equal(t, withdrawal.ID, *income.WithdrawalID)
}

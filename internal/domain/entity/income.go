package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxDescriptionLength is the maximum length of income, expense and remnant descriptions.
const MaxDescriptionLength = 200

// Income is money received in a monthly book. Its balance is derived from its expenses.
type Income struct {
	ID           uuid.UUID
	BookID       uuid.UUID
	Description  string
	Amount       decimal.Decimal
	WithdrawalID *uuid.UUID
	CreatedAt    time.Time
}

// NewIncome creates a new Income entity.
func NewIncome(bookID uuid.UUID, description string, amount decimal.Decimal, now time.Time) *Income {
	return &Income{
		ID:          uuid.New(),
		BookID:      bookID,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		CreatedAt:   now.UTC(),
	}
}

// IsValidDescription reports whether s is a non-blank description of at most max characters.
func IsValidDescription(s string, max int) bool {
	s = strings.TrimSpace(s)
	return s != "" && utf8.RuneCountInString(s) <= max
}

package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category field limits.
const (
	MaxCategoryNameLength        = 100
	MaxCategoryDescriptionLength = 200
)

// BudgetCategoryName is the category that exported budget items are charged to.
const BudgetCategoryName = "Budgets"

// ExpenseCategory classifies expenses. It cannot be removed while expenses reference it.
type ExpenseCategory struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewExpenseCategory creates a new ExpenseCategory entity.
func NewExpenseCategory(name, description string, now time.Time) *ExpenseCategory {
	now = now.UTC()
	return &ExpenseCategory{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

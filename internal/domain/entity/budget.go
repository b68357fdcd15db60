package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is a named plan of priced items that can be exported into expenses.
type Budget struct {
	ID        uuid.UUID
	Name      string
	State     PeriodState
	CreatedAt time.Time
	Items     []*BudgetItem
}

// NewBudget creates an open budget without items.
func NewBudget(name string, now time.Time) *Budget {
	return &Budget{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		State:     PeriodOpen,
		CreatedAt: now.UTC(),
	}
}

// PendingCost returns the cost of the items that were not exported yet.
func (b *Budget) PendingCost() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.Items {
		if !item.Exported {
			total = total.Add(item.Cost)
		}
	}
	return total
}

// HasExportedItems reports whether any item was already turned into expenses.
func (b *Budget) HasExportedItems() bool {
	for _, item := range b.Items {
		if item.Exported {
			return true
		}
	}
	return false
}

// BudgetItem is one priced entry of a budget.
type BudgetItem struct {
	ID              uuid.UUID
	BudgetID        uuid.UUID
	Name            string
	URL             string
	Description     string
	Cost            decimal.Decimal
	Exported        bool
	ExportExpenseID *uuid.UUID
	CreatedAt       time.Time
}

// NewBudgetItem creates a budget item that has not been exported.
func NewBudgetItem(budgetID uuid.UUID, name, url, description string, cost decimal.Decimal, now time.Time) *BudgetItem {
	return &BudgetItem{
		ID:          uuid.New(),
		BudgetID:    budgetID,
		Name:        strings.TrimSpace(name),
		URL:         strings.TrimSpace(url),
		Description: strings.TrimSpace(description),
		Cost:        cost,
		CreatedAt:   now.UTC(),
	}
}

// MarkExported records the expense the item was exported into.
func (i *BudgetItem) MarkExported(expenseID uuid.UUID) {
	i.Exported = true
	i.ExportExpenseID = &expenseID
}

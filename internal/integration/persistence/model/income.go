package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/homeledger/backend/internal/domain/entity"
	"github.com/homeledger/backend/internal/domain/valueobject"
)

// IncomeModel represents the incomes table in the database.
type IncomeModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BookID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_incomes_book"`
	Description  string     `gorm:"type:varchar(200);not null"`
	AmountCents  int64      `gorm:"not null"`
	WithdrawalID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_incomes_withdrawal"`
	CreatedAt    time.Time  `gorm:"not null"`
}

// TableName returns the table name for the IncomeModel.
func (IncomeModel) TableName() string {
	return "incomes"
}

// ToEntity converts an IncomeModel to a domain Income entity.
func (m *IncomeModel) ToEntity() *entity.Income {
	return &entity.Income{
		ID:           m.ID,
		BookID:       m.BookID,
		Description:  m.Description,
		Amount:       valueobject.FromCents(m.AmountCents),
		WithdrawalID: m.WithdrawalID,
		CreatedAt:    m.CreatedAt,
	}
}

// IncomeFromEntity creates an IncomeModel from a domain Income entity.
func IncomeFromEntity(income *entity.Income) *IncomeModel {
	return &IncomeModel{
		ID:           income.ID,
		BookID:       income.BookID,
		Description:  income.Description,
		AmountCents:  valueobject.ToCents(income.Amount),
		WithdrawalID: income.WithdrawalID,
		CreatedAt:    income.CreatedAt,
	}
}

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	IncomeID    uuid.UUID `gorm:"type:uuid;not null;index:idx_expenses_income"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index:idx_expenses_category"`
	Description string    `gorm:"type:varchar(200);not null"`
	AmountCents int64     `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	return &entity.Expense{
		ID:          m.ID,
		IncomeID:    m.IncomeID,
		CategoryID:  m.CategoryID,
		Description: m.Description,
		Amount:      valueobject.FromCents(m.AmountCents),
		CreatedAt:   m.CreatedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(expense *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:          expense.ID,
		IncomeID:    expense.IncomeID,
		CategoryID:  expense.CategoryID,
		Description: expense.Description,
		AmountCents: valueobject.ToCents(expense.Amount),
		CreatedAt:   expense.CreatedAt,
	}
}

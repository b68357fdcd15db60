package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/homeledger/backend/internal/domain/entity"
)

// ExpenseCategoryModel represents the expense_categories table in the database.
type ExpenseCategoryModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_expense_categories_name"`
	Description string    `gorm:"type:varchar(200);not null;default:''"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the ExpenseCategoryModel.
func (ExpenseCategoryModel) TableName() string {
	return "expense_categories"
}

// ToEntity converts an ExpenseCategoryModel to a domain ExpenseCategory entity.
func (m *ExpenseCategoryModel) ToEntity() *entity.ExpenseCategory {
	return &entity.ExpenseCategory{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// CategoryFromEntity creates an ExpenseCategoryModel from a domain ExpenseCategory entity.
func CategoryFromEntity(category *entity.ExpenseCategory) *ExpenseCategoryModel {
	return &ExpenseCategoryModel{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

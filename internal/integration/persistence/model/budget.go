package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/homeledger/backend/internal/domain/entity"
	"github.com/homeledger/backend/internal/domain/valueobject"
)

// BudgetModel represents the budgets table in the database.
type BudgetModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(200);not null"`
	State     string    `gorm:"type:varchar(10);not null;default:'open'"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	return &entity.Budget{
		ID:        m.ID,
		Name:      m.Name,
		State:     entity.PeriodState(m.State),
		CreatedAt: m.CreatedAt,
	}
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	return &BudgetModel{
		ID:        budget.ID,
		Name:      budget.Name,
		State:     string(budget.State),
		CreatedAt: budget.CreatedAt,
	}
}

// BudgetItemModel represents the budget_items table in the database.
type BudgetItemModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BudgetID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_budget_items_budget"`
	Name            string     `gorm:"type:varchar(200);not null"`
	URL             string     `gorm:"column:url;type:varchar(500);not null;default:''"`
	Description     string     `gorm:"type:text;not null;default:''"`
	CostCents       int64      `gorm:"not null"`
	Exported        bool       `gorm:"not null;default:false"`
	ExportExpenseID *uuid.UUID `gorm:"type:uuid;index:idx_budget_items_expense"`
	CreatedAt       time.Time  `gorm:"not null"`
}

// TableName returns the table name for the BudgetItemModel.
func (BudgetItemModel) TableName() string {
	return "budget_items"
}

// ToEntity converts a BudgetItemModel to a domain BudgetItem entity.
func (m *BudgetItemModel) ToEntity() *entity.BudgetItem {
	return &entity.BudgetItem{
		ID:              m.ID,
		BudgetID:        m.BudgetID,
		Name:            m.Name,
		URL:             m.URL,
		Description:     m.Description,
		Cost:            valueobject.FromCents(m.CostCents),
		Exported:        m.Exported,
		ExportExpenseID: m.ExportExpenseID,
		CreatedAt:       m.CreatedAt,
	}
}

// BudgetItemFromEntity creates a BudgetItemModel from a domain BudgetItem entity.
func BudgetItemFromEntity(item *entity.BudgetItem) *BudgetItemModel {
	return &BudgetItemModel{
		ID:              item.ID,
		BudgetID:        item.BudgetID,
		Name:            item.Name,
		URL:             item.URL,
		Description:     item.Description,
		CostCents:       valueobject.ToCents(item.Cost),
		Exported:        item.Exported,
		ExportExpenseID: item.ExportExpenseID,
		CreatedAt:       item.CreatedAt,
	}
}

// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/homeledger/backend/internal/domain/entity"
)

// AnnualFlowModel represents the annual_flows table in the database.
type AnnualFlowModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Year      int       `gorm:"not null;uniqueIndex:idx_annual_flows_year"`
	State     string    `gorm:"type:varchar(10);not null;default:'open'"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the AnnualFlowModel.
func (AnnualFlowModel) TableName() string {
	return "annual_flows"
}

// ToEntity converts an AnnualFlowModel to a domain AnnualFlow entity.
// Books are attached by the repository.
func (m *AnnualFlowModel) ToEntity() *entity.AnnualFlow {
	return &entity.AnnualFlow{
		ID:        m.ID,
		Year:      m.Year,
		State:     entity.PeriodState(m.State),
		CreatedAt: m.CreatedAt,
	}
}

// AnnualFlowFromEntity creates an AnnualFlowModel from a domain AnnualFlow entity.
func AnnualFlowFromEntity(flow *entity.AnnualFlow) *AnnualFlowModel {
	return &AnnualFlowModel{
		ID:        flow.ID,
		Year:      flow.Year,
		State:     string(flow.State),
		CreatedAt: flow.CreatedAt,
	}
}

// MonthlyIncomeBookModel represents the monthly_income_books table in the database.
type MonthlyIncomeBookModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FlowID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_books_flow_month"`
	Month    int       `gorm:"not null;uniqueIndex:idx_books_flow_month"`
	State    string    `gorm:"type:varchar(10);not null;default:'open'"`
	ClosedAt *time.Time
}

// TableName returns the table name for the MonthlyIncomeBookModel.
func (MonthlyIncomeBookModel) TableName() string {
	return "monthly_income_books"
}

// ToEntity converts a MonthlyIncomeBookModel to a domain MonthlyIncomeBook entity.
func (m *MonthlyIncomeBookModel) ToEntity() *entity.MonthlyIncomeBook {
	return &entity.MonthlyIncomeBook{
		ID:       m.ID,
		FlowID:   m.FlowID,
		Month:    m.Month,
		State:    entity.PeriodState(m.State),
		ClosedAt: m.ClosedAt,
	}
}

// BookFromEntity creates a MonthlyIncomeBookModel from a domain MonthlyIncomeBook entity.
func BookFromEntity(book *entity.MonthlyIncomeBook) *MonthlyIncomeBookModel {
	return &MonthlyIncomeBookModel{
		ID:       book.ID,
		FlowID:   book.FlowID,
		Month:    book.Month,
		State:    string(book.State),
		ClosedAt: book.ClosedAt,
	}
}

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/homeledger/backend/internal/domain/entity"
	"github.com/homeledger/backend/internal/domain/valueobject"
)

// RemnantModel represents the remnants table in the database.
type RemnantModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BookID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_remnants_book"`
	AmountCents   int64      `gorm:"not null"`
	Kind          string     `gorm:"type:varchar(20);not null"`
	Description   string     `gorm:"type:varchar(255);not null"`
	WithdrawalID  *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_remnants_withdrawal"`
	TransferredAt time.Time  `gorm:"not null"`
}

// TableName returns the table name for the RemnantModel.
func (RemnantModel) TableName() string {
	return "remnants"
}

// ToEntity converts a RemnantModel to a domain Remnant entity.
func (m *RemnantModel) ToEntity() *entity.Remnant {
	return &entity.Remnant{
		ID:            m.ID,
		BookID:        m.BookID,
		Amount:        valueobject.FromCents(m.AmountCents),
		Kind:          entity.RemnantKind(m.Kind),
		Description:   m.Description,
		WithdrawalID:  m.WithdrawalID,
		TransferredAt: m.TransferredAt,
	}
}

// RemnantFromEntity creates a RemnantModel from a domain Remnant entity.
func RemnantFromEntity(remnant *entity.Remnant) *RemnantModel {
	return &RemnantModel{
		ID:            remnant.ID,
		BookID:        remnant.BookID,
		AmountCents:   valueobject.ToCents(remnant.Amount),
		Kind:          string(remnant.Kind),
		Description:   remnant.Description,
		WithdrawalID:  remnant.WithdrawalID,
		TransferredAt: remnant.TransferredAt,
	}
}

// RemnantWithdrawalModel represents the remnant_withdrawals table in the database.
type RemnantWithdrawalModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FlowID      uuid.UUID `gorm:"type:uuid;not null;index:idx_withdrawals_flow"`
	AmountCents int64     `gorm:"not null"`
	Description string    `gorm:"type:varchar(200);not null"`
	TargetMonth int       `gorm:"not null"`
	State       string    `gorm:"type:varchar(10);not null;default:'pending'"`
	WithdrawnAt time.Time `gorm:"not null"`
	AppliedAt   *time.Time
}

// TableName returns the table name for the RemnantWithdrawalModel.
func (RemnantWithdrawalModel) TableName() string {
	return "remnant_withdrawals"
}

// ToEntity converts a RemnantWithdrawalModel to a domain RemnantWithdrawal entity.
func (m *RemnantWithdrawalModel) ToEntity() *entity.RemnantWithdrawal {
	return &entity.RemnantWithdrawal{
		ID:          m.ID,
		FlowID:      m.FlowID,
		Amount:      valueobject.FromCents(m.AmountCents),
		Description: m.Description,
		TargetMonth: m.TargetMonth,
		State:       entity.WithdrawalState(m.State),
		WithdrawnAt: m.WithdrawnAt,
		AppliedAt:   m.AppliedAt,
	}
}

// WithdrawalFromEntity creates a RemnantWithdrawalModel from a domain RemnantWithdrawal entity.
func WithdrawalFromEntity(w *entity.RemnantWithdrawal) *RemnantWithdrawalModel {
	return &RemnantWithdrawalModel{
		ID:          w.ID,
		FlowID:      w.FlowID,
		AmountCents: valueobject.ToCents(w.Amount),
		Description: w.Description,
		TargetMonth: w.TargetMonth,
		State:       string(w.State),
		WithdrawnAt: w.WithdrawnAt,
		AppliedAt:   w.AppliedAt,
	}
}

package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/domain/entity"
	domainerror "github.com/homeledger/backend/internal/domain/error"
	"github.com/homeledger/backend/internal/integration/persistence/model"
)

// expenseRepository implements the adapter.ExpenseRepository interface.
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository instance.
func NewExpenseRepository(db *gorm.DB) adapter.ExpenseRepository {
	return &expenseRepository{
		db: db,
	}
}

// Create creates a new expense in the database.
func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return conn(ctx, r.db).Create(model.ExpenseFromEntity(expense)).Error
}

// FindByID retrieves an expense by its ID.
func (r *expenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expenseModel model.ExpenseModel
	if err := conn(ctx, r.db).Where("id = ?", id).First(&expenseModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrExpenseNotFound
		}
		return nil, err
	}
	return expenseModel.ToEntity(), nil
}

// Update updates the description, category and amount of an expense.
func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	expenseModel := model.ExpenseFromEntity(expense)
	result := conn(ctx, r.db).Model(&model.ExpenseModel{}).
		Where("id = ?", expense.ID).
		Updates(map[string]any{
			"category_id":  expenseModel.CategoryID,
			"description":  expenseModel.Description,
			"amount_cents": expenseModel.AmountCents,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrExpenseNotFound
	}
	return nil
}

// Delete removes an expense from the database.
func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&model.ExpenseModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrExpenseNotFound
	}
	return nil
}

// ListByIncome retrieves the expenses of an income, newest first.
func (r *expenseRepository) ListByIncome(ctx context.Context, incomeID uuid.UUID) ([]*entity.Expense, error) {
	var expenseModels []model.ExpenseModel
	err := conn(ctx, r.db).Where("income_id = ?", incomeID).
		Order("created_at DESC").Order("id").
		Find(&expenseModels).Error
	if err != nil {
		return nil, err
	}

	expenses := make([]*entity.Expense, len(expenseModels))
	for i := range expenseModels {
		expenses[i] = expenseModels[i].ToEntity()
	}
	return expenses, nil
}

// CountByIncome counts the expenses charged to an income.
func (r *expenseRepository) CountByIncome(ctx context.Context, incomeID uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&model.ExpenseModel{}).Where("income_id = ?", incomeID).Count(&count).Error
	return count, err
}

// CountByCategory counts the expenses referencing a category.
func (r *expenseRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&model.ExpenseModel{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

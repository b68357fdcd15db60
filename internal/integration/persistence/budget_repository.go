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

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// Create creates a new budget in the database.
func (r *budgetRepository) Create(ctx context.Context, budget *entity.Budget) error {
	return conn(ctx, r.db).Create(model.BudgetFromEntity(budget)).Error
}

// FindByID retrieves a budget with its items.
func (r *budgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	db := conn(ctx, r.db)
	var budgetModel model.BudgetModel
	if err := db.Where("id = ?", id).First(&budgetModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, err
	}

	budgets, err := r.attachItems(db, []model.BudgetModel{budgetModel})
	if err != nil {
		return nil, err
	}
	return budgets[0], nil
}

// List retrieves all budgets with their items, newest first.
func (r *budgetRepository) List(ctx context.Context) ([]*entity.Budget, error) {
	db := conn(ctx, r.db)
	var budgetModels []model.BudgetModel
	if err := db.Order("created_at DESC").Find(&budgetModels).Error; err != nil {
		return nil, err
	}
	return r.attachItems(db, budgetModels)
}

// Delete removes a budget and its items.
func (r *budgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("budget_id = ?", id).Delete(&model.BudgetItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.BudgetModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrBudgetNotFound
		}
		return nil
	})
}

// CreateItem adds an item to a budget.
func (r *budgetRepository) CreateItem(ctx context.Context, item *entity.BudgetItem) error {
	return conn(ctx, r.db).Create(model.BudgetItemFromEntity(item)).Error
}

// FindItemByID retrieves a budget item by its ID.
func (r *budgetRepository) FindItemByID(ctx context.Context, id uuid.UUID) (*entity.BudgetItem, error) {
	return r.firstItem(conn(ctx, r.db).Where("id = ?", id))
}

// FindItemByIDForUpdate retrieves a budget item row locked for the current transaction.
func (r *budgetRepository) FindItemByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.BudgetItem, error) {
	return r.firstItem(forUpdate(conn(ctx, r.db)).Where("id = ?", id))
}

// UpdateItem updates an existing budget item.
func (r *budgetRepository) UpdateItem(ctx context.Context, item *entity.BudgetItem) error {
	return conn(ctx, r.db).Save(model.BudgetItemFromEntity(item)).Error
}

// DeleteItem removes a budget item.
func (r *budgetRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&model.BudgetItemModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrBudgetItemNotFound
	}
	return nil
}

// ClearExportReferences nulls the export reference of items pointing at the given expenses.
func (r *budgetRepository) ClearExportReferences(ctx context.Context, expenseIDs []uuid.UUID) error {
	if len(expenseIDs) == 0 {
		return nil
	}
	return conn(ctx, r.db).Model(&model.BudgetItemModel{}).
		Where("export_expense_id IN ?", expenseIDs).
		Update("export_expense_id", nil).Error
}

func (r *budgetRepository) firstItem(query *gorm.DB) (*entity.BudgetItem, error) {
	var itemModel model.BudgetItemModel
	if err := query.First(&itemModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetItemNotFound
		}
		return nil, err
	}
	return itemModel.ToEntity(), nil
}

func (r *budgetRepository) attachItems(db *gorm.DB, budgetModels []model.BudgetModel) ([]*entity.Budget, error) {
	budgets := make([]*entity.Budget, 0, len(budgetModels))
	if len(budgetModels) == 0 {
		return budgets, nil
	}

	ids := make([]uuid.UUID, 0, len(budgetModels))
	byID := make(map[uuid.UUID]*entity.Budget, len(budgetModels))
	for i := range budgetModels {
		budget := budgetModels[i].ToEntity()
		budgets = append(budgets, budget)
		ids = append(ids, budget.ID)
		byID[budget.ID] = budget
	}

	var itemModels []model.BudgetItemModel
	if err := db.Where("budget_id IN ?", ids).Order("created_at ASC").Order("id").Find(&itemModels).Error; err != nil {
		return nil, err
	}
	for i := range itemModels {
		item := itemModels[i].ToEntity()
		if budget, ok := byID[item.BudgetID]; ok {
			budget.Items = append(budget.Items, item)
		}
	}
	return budgets, nil
}

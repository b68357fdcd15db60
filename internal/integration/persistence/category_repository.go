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

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category in the database.
func (r *categoryRepository) Create(ctx context.Context, category *entity.ExpenseCategory) error {
	if err := conn(ctx, r.db).Create(model.CategoryFromEntity(category)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerror.ErrCategoryNameExists
		}
		return err
	}
	return nil
}

// FindByID retrieves a category by its ID.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ExpenseCategory, error) {
	return r.first(conn(ctx, r.db).Where("id = ?", id))
}

// FindByName retrieves a category by its exact name.
func (r *categoryRepository) FindByName(ctx context.Context, name string) (*entity.ExpenseCategory, error) {
	return r.first(conn(ctx, r.db).Where("name = ?", name))
}

// List retrieves all categories ordered by name.
func (r *categoryRepository) List(ctx context.Context) ([]*entity.ExpenseCategory, error) {
	var categoryModels []model.ExpenseCategoryModel
	if err := conn(ctx, r.db).Order("name ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}

	categories := make([]*entity.ExpenseCategory, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToEntity()
	}
	return categories, nil
}

// Update updates an existing category.
func (r *categoryRepository) Update(ctx context.Context, category *entity.ExpenseCategory) error {
	result := conn(ctx, r.db).Save(model.CategoryFromEntity(category))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domainerror.ErrCategoryNameExists
		}
		return result.Error
	}
	return nil
}

// Delete removes a category from the database.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&model.ExpenseCategoryModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCategoryNotFound
	}
	return nil
}

// ExistsByName checks if a category with the given name exists, ignoring excludeID when set.
func (r *categoryRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	query := conn(ctx, r.db).Model(&model.ExpenseCategoryModel{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *categoryRepository) first(query *gorm.DB) (*entity.ExpenseCategory, error) {
	var categoryModel model.ExpenseCategoryModel
	if err := query.First(&categoryModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, err
	}
	return categoryModel.ToEntity(), nil
}

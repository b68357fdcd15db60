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

// incomeRepository implements the adapter.IncomeRepository interface.
type incomeRepository struct {
	db *gorm.DB
}

// NewIncomeRepository creates a new income repository instance.
func NewIncomeRepository(db *gorm.DB) adapter.IncomeRepository {
	return &incomeRepository{
		db: db,
	}
}

// Create creates a new income in the database.
func (r *incomeRepository) Create(ctx context.Context, income *entity.Income) error {
	return conn(ctx, r.db).Create(model.IncomeFromEntity(income)).Error
}

// FindByID retrieves an income by its ID.
func (r *incomeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Income, error) {
	return r.first(conn(ctx, r.db).Where("id = ?", id))
}

// FindByIDForUpdate retrieves an income row locked for the current transaction.
func (r *incomeRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Income, error) {
	return r.first(forUpdate(conn(ctx, r.db)).Where("id = ?", id))
}

// ListByBook retrieves the incomes of a book, newest first.
func (r *incomeRepository) ListByBook(ctx context.Context, bookID uuid.UUID) ([]*entity.Income, error) {
	var incomeModels []model.IncomeModel
	err := conn(ctx, r.db).Where("book_id = ?", bookID).
		Order("created_at DESC").Order("id").
		Find(&incomeModels).Error
	if err != nil {
		return nil, err
	}
	return toIncomes(incomeModels), nil
}

// ListByFlow retrieves every income of a flow ordered by month and creation time.
func (r *incomeRepository) ListByFlow(ctx context.Context, flowID uuid.UUID) ([]*entity.Income, error) {
	var incomeModels []model.IncomeModel
	err := conn(ctx, r.db).Model(&model.IncomeModel{}).
		Joins("JOIN monthly_income_books b ON b.id = incomes.book_id").
		Where("b.flow_id = ?", flowID).
		Order("b.month ASC").Order("incomes.created_at ASC").
		Find(&incomeModels).Error
	if err != nil {
		return nil, err
	}
	return toIncomes(incomeModels), nil
}

// ListInOpenBooks retrieves the incomes whose book is still open, newest first.
func (r *incomeRepository) ListInOpenBooks(ctx context.Context) ([]*entity.Income, error) {
	var incomeModels []model.IncomeModel
	err := conn(ctx, r.db).Model(&model.IncomeModel{}).
		Joins("JOIN monthly_income_books b ON b.id = incomes.book_id").
		Where("b.state = ?", entity.PeriodOpen).
		Order("incomes.created_at DESC").
		Find(&incomeModels).Error
	if err != nil {
		return nil, err
	}
	return toIncomes(incomeModels), nil
}

// ExistsByWithdrawalID checks if a withdrawal already deposited its income.
func (r *incomeRepository) ExistsByWithdrawalID(ctx context.Context, withdrawalID uuid.UUID) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&model.IncomeModel{}).Where("withdrawal_id = ?", withdrawalID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes an income from the database.
func (r *incomeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&model.IncomeModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrIncomeNotFound
	}
	return nil
}

func (r *incomeRepository) first(query *gorm.DB) (*entity.Income, error) {
	var incomeModel model.IncomeModel
	if err := query.First(&incomeModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrIncomeNotFound
		}
		return nil, err
	}
	return incomeModel.ToEntity(), nil
}

func toIncomes(incomeModels []model.IncomeModel) []*entity.Income {
	incomes := make([]*entity.Income, len(incomeModels))
	for i := range incomeModels {
		incomes[i] = incomeModels[i].ToEntity()
	}
	return incomes
}

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

// flowRepository implements the adapter.FlowRepository interface.
type flowRepository struct {
	db *gorm.DB
}

// NewFlowRepository creates a new flow repository instance.
func NewFlowRepository(db *gorm.DB) adapter.FlowRepository {
	return &flowRepository{
		db: db,
	}
}

// Create persists a flow together with its books.
func (r *flowRepository) Create(ctx context.Context, flow *entity.AnnualFlow) error {
	books := make([]*model.MonthlyIncomeBookModel, 0, len(flow.Books))
	for _, book := range flow.Books {
		books = append(books, model.BookFromEntity(book))
	}

	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.AnnualFlowFromEntity(flow)).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domainerror.ErrFlowYearExists
			}
			return err
		}
		if len(books) == 0 {
			return nil
		}
		return tx.Create(&books).Error
	})
}

// FindByID retrieves a flow with its books ordered by month.
func (r *flowRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AnnualFlow, error) {
	db := conn(ctx, r.db)
	var flowModel model.AnnualFlowModel
	if err := db.Where("id = ?", id).First(&flowModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrFlowNotFound
		}
		return nil, err
	}

	flows, err := r.attachBooks(db, []model.AnnualFlowModel{flowModel})
	if err != nil {
		return nil, err
	}
	return flows[0], nil
}

// FindByIDForUpdate retrieves a flow row locked for the current transaction, without books.
func (r *flowRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.AnnualFlow, error) {
	var flowModel model.AnnualFlowModel
	if err := forUpdate(conn(ctx, r.db)).Where("id = ?", id).First(&flowModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrFlowNotFound
		}
		return nil, err
	}
	return flowModel.ToEntity(), nil
}

// FindLatest retrieves the flow with the highest year.
func (r *flowRepository) FindLatest(ctx context.Context) (*entity.AnnualFlow, error) {
	var flowModel model.AnnualFlowModel
	if err := conn(ctx, r.db).Order("year DESC").First(&flowModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrFlowNotFound
		}
		return nil, err
	}
	return flowModel.ToEntity(), nil
}

// List retrieves all flows with their books, newest year first.
func (r *flowRepository) List(ctx context.Context) ([]*entity.AnnualFlow, error) {
	db := conn(ctx, r.db)
	var flowModels []model.AnnualFlowModel
	if err := db.Order("year DESC").Find(&flowModels).Error; err != nil {
		return nil, err
	}
	return r.attachBooks(db, flowModels)
}

// ExistsByYear checks if a flow exists for the given year.
func (r *flowRepository) ExistsByYear(ctx context.Context, year int) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&model.AnnualFlowModel{}).Where("year = ?", year).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkClosed closes an open flow.
func (r *flowRepository) MarkClosed(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Model(&model.AnnualFlowModel{}).
		Where("id = ? AND state = ?", id, entity.PeriodOpen).
		Update("state", entity.PeriodClosed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrStateChanged
	}
	return nil
}

// Delete removes a flow and everything it owns. Budget items exported into its
// expenses lose their export reference.
func (r *flowRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		books := tx.Model(&model.MonthlyIncomeBookModel{}).Select("id").Where("flow_id = ?", id)
		incomes := tx.Model(&model.IncomeModel{}).Select("id").Where("book_id IN (?)", books)
		expenses := tx.Model(&model.ExpenseModel{}).Select("id").Where("income_id IN (?)", incomes)

		if err := tx.Model(&model.BudgetItemModel{}).
			Where("export_expense_id IN (?)", expenses).
			Update("export_expense_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("income_id IN (?)", incomes).Delete(&model.ExpenseModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id IN (?)", books).Delete(&model.IncomeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id IN (?)", books).Delete(&model.RemnantModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("flow_id = ?", id).Delete(&model.RemnantWithdrawalModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("flow_id = ?", id).Delete(&model.MonthlyIncomeBookModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.AnnualFlowModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrFlowNotFound
		}
		return nil
	})
}

func (r *flowRepository) attachBooks(db *gorm.DB, flowModels []model.AnnualFlowModel) ([]*entity.AnnualFlow, error) {
	flows := make([]*entity.AnnualFlow, 0, len(flowModels))
	if len(flowModels) == 0 {
		return flows, nil
	}

	ids := make([]uuid.UUID, 0, len(flowModels))
	byID := make(map[uuid.UUID]*entity.AnnualFlow, len(flowModels))
	for i := range flowModels {
		flow := flowModels[i].ToEntity()
		flows = append(flows, flow)
		ids = append(ids, flow.ID)
		byID[flow.ID] = flow
	}

	var bookModels []model.MonthlyIncomeBookModel
	if err := db.Where("flow_id IN ?", ids).Order("month ASC").Find(&bookModels).Error; err != nil {
		return nil, err
	}
	for i := range bookModels {
		book := bookModels[i].ToEntity()
		if flow, ok := byID[book.FlowID]; ok {
			flow.Books = append(flow.Books, book)
		}
	}
	return flows, nil
}

package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/domain/entity"
	domainerror "github.com/homeledger/backend/internal/domain/error"
	"github.com/homeledger/backend/internal/integration/persistence/model"
)

// bookRepository implements the adapter.BookRepository interface.
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository instance.
func NewBookRepository(db *gorm.DB) adapter.BookRepository {
	return &bookRepository{
		db: db,
	}
}

// FindByID retrieves a book by its ID.
func (r *bookRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MonthlyIncomeBook, error) {
	return r.first(conn(ctx, r.db).Where("id = ?", id))
}

// FindByIDForUpdate retrieves a book row locked for the current transaction.
func (r *bookRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.MonthlyIncomeBook, error) {
	return r.first(forUpdate(conn(ctx, r.db)).Where("id = ?", id))
}

// FindByFlowAndMonth retrieves the book of a flow for a calendar month.
func (r *bookRepository) FindByFlowAndMonth(ctx context.Context, flowID uuid.UUID, month int) (*entity.MonthlyIncomeBook, error) {
	return r.first(conn(ctx, r.db).Where("flow_id = ? AND month = ?", flowID, month))
}

// ListByFlow retrieves the books of a flow ordered by month.
func (r *bookRepository) ListByFlow(ctx context.Context, flowID uuid.UUID) ([]*entity.MonthlyIncomeBook, error) {
	var bookModels []model.MonthlyIncomeBookModel
	if err := conn(ctx, r.db).Where("flow_id = ?", flowID).Order("month ASC").Find(&bookModels).Error; err != nil {
		return nil, err
	}

	books := make([]*entity.MonthlyIncomeBook, len(bookModels))
	for i := range bookModels {
		books[i] = bookModels[i].ToEntity()
	}
	return books, nil
}

// CountOpenByFlow counts the books of a flow that are still open.
func (r *bookRepository) CountOpenByFlow(ctx context.Context, flowID uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&model.MonthlyIncomeBookModel{}).
		Where("flow_id = ? AND state = ?", flowID, entity.PeriodOpen).
		Count(&count).Error
	return count, err
}

// MarkClosed closes an open book.
func (r *bookRepository) MarkClosed(ctx context.Context, id uuid.UUID, closedAt time.Time) error {
	result := conn(ctx, r.db).Model(&model.MonthlyIncomeBookModel{}).
		Where("id = ? AND state = ?", id, entity.PeriodOpen).
		Updates(map[string]any{"state": entity.PeriodClosed, "closed_at": closedAt.UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrStateChanged
	}
	return nil
}

func (r *bookRepository) first(query *gorm.DB) (*entity.MonthlyIncomeBook, error) {
	var bookModel model.MonthlyIncomeBookModel
	if err := query.First(&bookModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBookNotFound
		}
		return nil, err
	}
	return bookModel.ToEntity(), nil
}

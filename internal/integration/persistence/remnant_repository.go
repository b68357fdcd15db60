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

// remnantRepository implements the adapter.RemnantRepository interface.
type remnantRepository struct {
	db *gorm.DB
}

// NewRemnantRepository creates a new remnant repository instance.
func NewRemnantRepository(db *gorm.DB) adapter.RemnantRepository {
	return &remnantRepository{
		db: db,
	}
}

// remnantRow is a remnant joined with its book and flow.
type remnantRow struct {
	model.RemnantModel
	FlowID uuid.UUID
	Year   int
	Month  int
}

// Create creates a new remnant in the database.
func (r *remnantRepository) Create(ctx context.Context, remnant *entity.Remnant) error {
	return conn(ctx, r.db).Create(model.RemnantFromEntity(remnant)).Error
}

// FindByID retrieves a remnant joined with its book and flow.
func (r *remnantRepository) FindByID(ctx context.Context, id uuid.UUID) (*adapter.RemnantRecord, error) {
	records, err := r.list(r.joined(ctx).Where("remnants.id = ?", id))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domainerror.ErrRemnantNotFound
	}
	return records[0], nil
}

// FindCarryForwardByBook retrieves the carry-forward remnant of a book, or nil when none exists.
func (r *remnantRepository) FindCarryForwardByBook(ctx context.Context, bookID uuid.UUID) (*entity.Remnant, error) {
	var remnantModel model.RemnantModel
	err := conn(ctx, r.db).
		Where("book_id = ? AND kind = ?", bookID, entity.RemnantCarryForward).
		First(&remnantModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return remnantModel.ToEntity(), nil
}

// ExistsByWithdrawalID checks if a withdrawal already wrote its remnant entry.
func (r *remnantRepository) ExistsByWithdrawalID(ctx context.Context, withdrawalID uuid.UUID) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&model.RemnantModel{}).Where("withdrawal_id = ?", withdrawalID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByFlow retrieves the remnants of a flow, newest first.
func (r *remnantRepository) ListByFlow(ctx context.Context, flowID uuid.UUID) ([]*adapter.RemnantRecord, error) {
	return r.list(r.joined(ctx).Where("b.flow_id = ?", flowID))
}

// ListAll retrieves the remnants of every flow, newest first.
func (r *remnantRepository) ListAll(ctx context.Context) ([]*adapter.RemnantRecord, error) {
	return r.list(r.joined(ctx))
}

func (r *remnantRepository) joined(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db).Table("remnants").
		Select("remnants.*, b.flow_id AS flow_id, f.year AS year, b.month AS month").
		Joins("JOIN monthly_income_books b ON b.id = remnants.book_id").
		Joins("JOIN annual_flows f ON f.id = b.flow_id")
}

func (r *remnantRepository) list(query *gorm.DB) ([]*adapter.RemnantRecord, error) {
	var rows []remnantRow
	if err := query.Order("remnants.transferred_at DESC").Order("remnants.id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]*adapter.RemnantRecord, len(rows))
	for i := range rows {
		records[i] = &adapter.RemnantRecord{
			Remnant: rows[i].RemnantModel.ToEntity(),
			FlowID:  rows[i].FlowID,
			Year:    rows[i].Year,
			Month:   rows[i].Month,
		}
	}
	return records, nil
}

// withdrawalRepository implements the adapter.WithdrawalRepository interface.
type withdrawalRepository struct {
	db *gorm.DB
}

// NewWithdrawalRepository creates a new withdrawal repository instance.
func NewWithdrawalRepository(db *gorm.DB) adapter.WithdrawalRepository {
	return &withdrawalRepository{
		db: db,
	}
}

// Create creates a new withdrawal in the database.
func (r *withdrawalRepository) Create(ctx context.Context, withdrawal *entity.RemnantWithdrawal) error {
	return conn(ctx, r.db).Create(model.WithdrawalFromEntity(withdrawal)).Error
}

// FindByIDForUpdate retrieves a withdrawal row locked for the current transaction.
func (r *withdrawalRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.RemnantWithdrawal, error) {
	var withdrawalModel model.RemnantWithdrawalModel
	if err := forUpdate(conn(ctx, r.db)).Where("id = ?", id).First(&withdrawalModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrWithdrawalNotFound
		}
		return nil, err
	}
	return withdrawalModel.ToEntity(), nil
}

// MarkApplied moves a pending withdrawal to applied.
func (r *withdrawalRepository) MarkApplied(ctx context.Context, id uuid.UUID, appliedAt time.Time) error {
	result := conn(ctx, r.db).Model(&model.RemnantWithdrawalModel{}).
		Where("id = ? AND state = ?", id, entity.WithdrawalPending).
		Updates(map[string]any{"state": entity.WithdrawalApplied, "applied_at": appliedAt.UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrStateChanged
	}
	return nil
}

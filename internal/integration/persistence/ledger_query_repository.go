package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/domain/valueobject"
	"github.com/homeledger/backend/internal/integration/persistence/model"
)

// ledgerQueryRepository implements the adapter.LedgerQueryRepository interface.
// Money is summed as integer cents so results are exact on every dialect.
type ledgerQueryRepository struct {
	db *gorm.DB
}

// NewLedgerQueryRepository creates a new ledger query repository instance.
func NewLedgerQueryRepository(db *gorm.DB) adapter.LedgerQueryRepository {
	return &ledgerQueryRepository{
		db: db,
	}
}

// ExpenseTotalByIncome sums the expenses charged to an income.
func (r *ledgerQueryRepository) ExpenseTotalByIncome(ctx context.Context, incomeID uuid.UUID) (decimal.Decimal, error) {
	var cents int64
	err := conn(ctx, r.db).Model(&model.ExpenseModel{}).
		Select("CAST(COALESCE(SUM(amount_cents), 0) AS BIGINT)").
		Where("income_id = ?", incomeID).
		Scan(&cents).Error
	if err != nil {
		return decimal.Zero, err
	}
	return valueobject.FromCents(cents), nil
}

// ExpenseTotalsByIncomes sums expenses per income for the given incomes.
func (r *ledgerQueryRepository) ExpenseTotalsByIncomes(ctx context.Context, incomeIDs []uuid.UUID) (map[uuid.UUID]adapter.IncomeExpenseTotal, error) {
	totals := make(map[uuid.UUID]adapter.IncomeExpenseTotal, len(incomeIDs))
	if len(incomeIDs) == 0 {
		return totals, nil
	}

	var results []struct {
		IncomeID   uuid.UUID
		TotalCents int64
		Count      int64
	}
	err := conn(ctx, r.db).Model(&model.ExpenseModel{}).
		Select("income_id, CAST(COALESCE(SUM(amount_cents), 0) AS BIGINT) AS total_cents, COUNT(*) AS count").
		Where("income_id IN ?", incomeIDs).
		Group("income_id").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	for _, row := range results {
		totals[row.IncomeID] = adapter.IncomeExpenseTotal{
			Total: valueobject.FromCents(row.TotalCents),
			Count: row.Count,
		}
	}
	return totals, nil
}

// BookTotals sums incomes and their expenses within a book.
func (r *ledgerQueryRepository) BookTotals(ctx context.Context, bookID uuid.UUID) (adapter.PeriodTotals, error) {
	query := `
		SELECT
			CAST(COALESCE((SELECT SUM(i.amount_cents) FROM incomes i WHERE i.book_id = ?), 0) AS BIGINT) AS income_cents,
			CAST(COALESCE((
				SELECT SUM(e.amount_cents)
				FROM expenses e
				JOIN incomes i ON i.id = e.income_id
				WHERE i.book_id = ?
			), 0) AS BIGINT) AS expense_cents
	`

	var result struct {
		IncomeCents  int64
		ExpenseCents int64
	}
	if err := conn(ctx, r.db).Raw(query, bookID, bookID).Scan(&result).Error; err != nil {
		return adapter.PeriodTotals{}, err
	}
	return adapter.PeriodTotals{
		Income:   valueobject.FromCents(result.IncomeCents),
		Expenses: valueobject.FromCents(result.ExpenseCents),
	}, nil
}

// MonthlyTotalsByFlow sums incomes and expenses for each book of a flow, ordered by month.
func (r *ledgerQueryRepository) MonthlyTotalsByFlow(ctx context.Context, flowID uuid.UUID) ([]adapter.MonthlyTotals, error) {
	query := `
		SELECT
			b.id AS book_id,
			b.month AS month,
			CAST(COALESCE((SELECT SUM(i.amount_cents) FROM incomes i WHERE i.book_id = b.id), 0) AS BIGINT) AS income_cents,
			CAST(COALESCE((
				SELECT SUM(e.amount_cents)
				FROM expenses e
				JOIN incomes i ON i.id = e.income_id
				WHERE i.book_id = b.id
			), 0) AS BIGINT) AS expense_cents
		FROM monthly_income_books b
		WHERE b.flow_id = ?
		ORDER BY b.month ASC
	`

	var results []struct {
		BookID       uuid.UUID
		Month        int
		IncomeCents  int64
		ExpenseCents int64
	}
	if err := conn(ctx, r.db).Raw(query, flowID).Scan(&results).Error; err != nil {
		return nil, err
	}

	totals := make([]adapter.MonthlyTotals, len(results))
	for i, row := range results {
		totals[i] = adapter.MonthlyTotals{
			BookID: row.BookID,
			Month:  row.Month,
			PeriodTotals: adapter.PeriodTotals{
				Income:   valueobject.FromCents(row.IncomeCents),
				Expenses: valueobject.FromCents(row.ExpenseCents),
			},
		}
	}
	return totals, nil
}

// RemnantTotalByFlow sums every remnant entry of a flow, positive and negative.
func (r *ledgerQueryRepository) RemnantTotalByFlow(ctx context.Context, flowID uuid.UUID) (decimal.Decimal, error) {
	var cents int64
	err := conn(ctx, r.db).Model(&model.RemnantModel{}).
		Select("CAST(COALESCE(SUM(remnants.amount_cents), 0) AS BIGINT)").
		Joins("JOIN monthly_income_books b ON b.id = remnants.book_id").
		Where("b.flow_id = ?", flowID).
		Scan(&cents).Error
	if err != nil {
		return decimal.Zero, err
	}
	return valueobject.FromCents(cents), nil
}

// MonthCategoryTotals sums the expenses of a flow per month and category.
func (r *ledgerQueryRepository) MonthCategoryTotals(ctx context.Context, flowID uuid.UUID) ([]adapter.MonthCategoryTotal, error) {
	query := `
		SELECT
			b.month AS month,
			c.id AS category_id,
			c.name AS category_name,
			CAST(SUM(e.amount_cents) AS BIGINT) AS total_cents
		FROM expenses e
		JOIN incomes i ON i.id = e.income_id
		JOIN monthly_income_books b ON b.id = i.book_id
		JOIN expense_categories c ON c.id = e.category_id
		WHERE b.flow_id = ?
		GROUP BY b.month, c.id, c.name
		ORDER BY b.month ASC, c.name ASC
	`

	var results []struct {
		Month        int
		CategoryID   uuid.UUID
		CategoryName string
		TotalCents   int64
	}
	if err := conn(ctx, r.db).Raw(query, flowID).Scan(&results).Error; err != nil {
		return nil, err
	}

	totals := make([]adapter.MonthCategoryTotal, len(results))
	for i, row := range results {
		totals[i] = adapter.MonthCategoryTotal{
			Month: row.Month,
			CategoryTotal: adapter.CategoryTotal{
				CategoryID:   row.CategoryID,
				CategoryName: row.CategoryName,
				Total:        valueobject.FromCents(row.TotalCents),
			},
		}
	}
	return totals, nil
}

// IncomeCategoryTotals sums the expenses of a flow per income and category.
func (r *ledgerQueryRepository) IncomeCategoryTotals(ctx context.Context, flowID uuid.UUID) ([]adapter.IncomeCategoryTotal, error) {
	query := `
		SELECT
			i.id AS income_id,
			c.id AS category_id,
			c.name AS category_name,
			CAST(SUM(e.amount_cents) AS BIGINT) AS total_cents
		FROM expenses e
		JOIN incomes i ON i.id = e.income_id
		JOIN monthly_income_books b ON b.id = i.book_id
		JOIN expense_categories c ON c.id = e.category_id
		WHERE b.flow_id = ?
		GROUP BY i.id, c.id, c.name
		ORDER BY c.name ASC
	`

	var results []struct {
		IncomeID     uuid.UUID
		CategoryID   uuid.UUID
		CategoryName string
		TotalCents   int64
	}
	if err := conn(ctx, r.db).Raw(query, flowID).Scan(&results).Error; err != nil {
		return nil, err
	}

	totals := make([]adapter.IncomeCategoryTotal, len(results))
	for i, row := range results {
		totals[i] = adapter.IncomeCategoryTotal{
			IncomeID: row.IncomeID,
			CategoryTotal: adapter.CategoryTotal{
				CategoryID:   row.CategoryID,
				CategoryName: row.CategoryName,
				Total:        valueobject.FromCents(row.TotalCents),
			},
		}
	}
	return totals, nil
}

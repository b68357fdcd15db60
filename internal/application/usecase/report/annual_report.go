package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/homeledger/backend/internal/application/adapter"
	"github.com/homeledger/backend/internal/application/usecase/ledger"
	"github.com/homeledger/backend/internal/domain/entity"
	"github.com/homeledger/backend/internal/domain/valueobject"
)

// AnnualReportInput represents the input for the annual report.
type AnnualReportInput struct {
	FlowID uuid.UUID
}

// MonthReport holds the totals of one month.
type MonthReport struct {
	Month    int             `json:"month"`
	Name     string          `json:"name"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// CategoryReport holds the expenses of one category for each month (index 0 is January).
type CategoryReport struct {
	CategoryID uuid.UUID         `json:"category_id"`
	Name       string            `json:"name"`
	Monthly    []decimal.Decimal `json:"monthly"`
	Total      decimal.Decimal   `json:"total"`
}

// CategoryAmount is a category sum within one income.
type CategoryAmount struct {
	CategoryID uuid.UUID       `json:"category_id"`
	Name       string          `json:"name"`
	Total      decimal.Decimal `json:"total"`
}

// IncomeReport holds one income with its spending per category.
type IncomeReport struct {
	IncomeID      uuid.UUID        `json:"income_id"`
	Month         int              `json:"month"`
	MonthName     string           `json:"month_name"`
	Description   string           `json:"description"`
	Amount        decimal.Decimal  `json:"amount"`
	Expenses      []CategoryAmount `json:"expenses"`
	TotalExpenses decimal.Decimal  `json:"total_expenses"`
}

// AnnualReport is the full year view of a flow. It is cached as JSON.
type AnnualReport struct {
	FlowID        uuid.UUID          `json:"flow_id"`
	Year          int                `json:"year"`
	State         entity.PeriodState `json:"state"`
	Months        []MonthReport      `json:"months"`
	Categories    []CategoryReport   `json:"categories"`
	Incomes       []IncomeReport     `json:"incomes"`
	TotalIncome   decimal.Decimal    `json:"total_income"`
	TotalExpenses decimal.Decimal    `json:"total_expenses"`
}

// Balance returns the year income minus the year expenses.
func (r *AnnualReport) Balance() decimal.Decimal {
	return r.TotalIncome.Sub(r.TotalExpenses)
}

// AnnualReportUseCase builds the annual report, serving it from the cache when possible.
type AnnualReportUseCase struct {
	flowRepo   adapter.FlowRepository
	incomeRepo adapter.IncomeRepository
	queries    adapter.LedgerQueryRepository
	balances   *ledger.BalanceCalculator
	cache      adapter.ReportCache
}

// NewAnnualReportUseCase creates a new AnnualReportUseCase instance.
func NewAnnualReportUseCase(
	flowRepo adapter.FlowRepository,
	incomeRepo adapter.IncomeRepository,
	queries adapter.LedgerQueryRepository,
	balances *ledger.BalanceCalculator,
	cache adapter.ReportCache,
) *AnnualReportUseCase {
	return &AnnualReportUseCase{
		flowRepo:   flowRepo,
		incomeRepo: incomeRepo,
		queries:    queries,
		balances:   balances,
		cache:      cache,
	}
}

// Execute returns the annual report of a flow.
func (uc *AnnualReportUseCase) Execute(ctx context.Context, input AnnualReportInput) (*AnnualReport, error) {
	if cached := uc.fromCache(ctx, input.FlowID); cached != nil {
		return cached, nil
	}

	flow, err := uc.flowRepo.FindByID(ctx, input.FlowID)
	if err != nil {
		return nil, ledger.Translate(err, "find flow")
	}

	report, err := uc.build(ctx, flow)
	if err != nil {
		return nil, err
	}

	uc.store(ctx, report)
	return report, nil
}

func (uc *AnnualReportUseCase) build(ctx context.Context, flow *entity.AnnualFlow) (*AnnualReport, error) {
	yearTotals, months, err := uc.balances.FlowTotals(ctx, flow.ID)
	if err != nil {
		return nil, err
	}

	report := &AnnualReport{
		FlowID:        flow.ID,
		Year:          flow.Year,
		State:         flow.State,
		Months:        make([]MonthReport, valueobject.MonthsPerYear),
		Categories:    []CategoryReport{},
		Incomes:       []IncomeReport{},
		TotalIncome:   yearTotals.Income,
		TotalExpenses: yearTotals.Expenses,
	}
	for i := range report.Months {
		report.Months[i] = MonthReport{
			Month:    i + 1,
			Name:     valueobject.MonthName(i + 1),
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
		}
	}
	for _, month := range months {
		if !valueobject.IsValidMonth(month.Month) {
			continue
		}
		report.Months[month.Month-1].Income = month.Income
		report.Months[month.Month-1].Expenses = month.Expenses
	}

	// Expenses by category and month
	monthCategories, err := uc.queries.MonthCategoryTotals(ctx, flow.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum category totals: %w", err)
	}
	byCategory := make(map[uuid.UUID]*CategoryReport)
	for _, row := range monthCategories {
		category, ok := byCategory[row.CategoryID]
		if !ok {
			category = &CategoryReport{
				CategoryID: row.CategoryID,
				Name:       row.CategoryName,
				Monthly:    make([]decimal.Decimal, valueobject.MonthsPerYear),
				Total:      decimal.Zero,
			}
			for i := range category.Monthly {
				category.Monthly[i] = decimal.Zero
			}
			byCategory[row.CategoryID] = category
		}
		if valueobject.IsValidMonth(row.Month) {
			category.Monthly[row.Month-1] = category.Monthly[row.Month-1].Add(row.Total)
		}
		category.Total = category.Total.Add(row.Total)
	}
	for _, category := range byCategory {
		report.Categories = append(report.Categories, *category)
	}
	sort.Slice(report.Categories, func(i, j int) bool {
		return report.Categories[i].Name < report.Categories[j].Name
	})

	// Incomes with their spending per category
	incomes, err := uc.incomeRepo.ListByFlow(ctx, flow.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	incomeCategories, err := uc.queries.IncomeCategoryTotals(ctx, flow.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum income categories: %w", err)
	}
	spending := make(map[uuid.UUID][]CategoryAmount)
	for _, row := range incomeCategories {
		spending[row.IncomeID] = append(spending[row.IncomeID], CategoryAmount{
			CategoryID: row.CategoryID,
			Name:       row.CategoryName,
			Total:      row.Total,
		})
	}

	monthOf := make(map[uuid.UUID]int, len(flow.Books))
	for _, book := range flow.Books {
		monthOf[book.ID] = book.Month
	}
	for _, income := range incomes {
		expenses := spending[income.ID]
		if expenses == nil {
			expenses = []CategoryAmount{}
		}
		total := decimal.Zero
		for _, expense := range expenses {
			total = total.Add(expense.Total)
		}
		month := monthOf[income.BookID]
		report.Incomes = append(report.Incomes, IncomeReport{
			IncomeID:      income.ID,
			Month:         month,
			MonthName:     valueobject.MonthName(month),
			Description:   income.Description,
			Amount:        income.Amount,
			Expenses:      expenses,
			TotalExpenses: total,
		})
	}
	sort.SliceStable(report.Incomes, func(i, j int) bool {
		return report.Incomes[i].Month < report.Incomes[j].Month
	})

	return report, nil
}

func (uc *AnnualReportUseCase) fromCache(ctx context.Context, flowID uuid.UUID) *AnnualReport {
	if uc.cache == nil {
		return nil
	}
	payload, err := uc.cache.GetAnnualReport(ctx, flowID)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read cached annual report", "flow_id", flowID, "error", err)
		return nil
	}
	if payload == nil {
		return nil
	}

	var report AnnualReport
	if err := json.Unmarshal(payload, &report); err != nil {
		slog.WarnContext(ctx, "Discarding malformed cached annual report", "flow_id", flowID, "error", err)
		return nil
	}
	return &report
}

func (uc *AnnualReportUseCase) store(ctx context.Context, report *AnnualReport) {
	if uc.cache == nil {
		return
	}
	payload, err := json.Marshal(report)
	if err != nil {
		slog.WarnContext(ctx, "Failed to encode annual report", "flow_id", report.FlowID, "error", err)
		return
	}
	if err := uc.cache.SetAnnualReport(ctx, report.FlowID, payload); err != nil {
		slog.WarnContext(ctx, "Failed to cache annual report", "flow_id", report.FlowID, "error", err)
	}
}

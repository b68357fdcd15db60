package report

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeledger/backend/internal/application/usecase/ledger"
	"github.com/homeledger/backend/internal/application/usecase/usecasetest"
	"github.com/homeledger/backend/internal/domain/entity"
	domainerror "github.com/homeledger/backend/internal/domain/error"
	"github.com/homeledger/backend/internal/integration/cache"
)

// seedYear fills March and April of 2025:
// March: salary 1000 with groceries 200 and rent 500, bonus 300 unspent.
// April: salary 1000 with groceries 150.
func seedYear(t *testing.T, env *usecasetest.Env) (*entity.AnnualFlow, *entity.ExpenseCategory, *entity.ExpenseCategory) {
	t.Helper()

	annualFlow := env.Flow(t, 2025)
	groceries := env.Category(t, "Groceries")
	rent := env.Category(t, "Rent")

	march := env.Book(t, annualFlow.ID, 3)
	salary := env.Income(t, march.ID, "Salary", "1000.00")
	env.Income(t, march.ID, "Bonus", "300.00")
	env.Expense(t, salary.ID, groceries.ID, "Market", "120.00")
	env.Expense(t, salary.ID, groceries.ID, "Bakery", "80.00")
	env.Expense(t, salary.ID, rent.ID, "Rent", "500.00")

	april := env.Income(t, env.Book(t, annualFlow.ID, 4).ID, "Salary", "1000.00")
	env.Expense(t, april.ID, groceries.ID, "Market", "150.00")

	return annualFlow, groceries, rent
}

func TestAnnualReportUseCase_Build(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	annualFlow, groceries, rent := seedYear(t, env)

	uc := NewAnnualReportUseCase(env.Flows, env.Incomes, env.Queries, env.Balances, env.Cache)
	report, err := uc.Execute(ctx, AnnualReportInput{FlowID: annualFlow.ID})
	require.NoError(t, err)

	assert.Equal(t, 2025, report.Year)
	assert.True(t, report.TotalIncome.Equal(usecasetest.Amount(t, "2300.00")))
	assert.True(t, report.TotalExpenses.Equal(usecasetest.Amount(t, "850.00")))
	assert.True(t, report.Balance().Equal(usecasetest.Amount(t, "1450.00")))

	require.Len(t, report.Months, 12)
	assert.Equal(t, "March", report.Months[2].Name)
	assert.True(t, report.Months[2].Income.Equal(usecasetest.Amount(t, "1300.00")))
	assert.True(t, report.Months[2].Expenses.Equal(usecasetest.Amount(t, "700.00")))
	assert.True(t, report.Months[3].Expenses.Equal(usecasetest.Amount(t, "150.00")))
	assert.True(t, report.Months[0].Income.IsZero())

	require.Len(t, report.Categories, 2)
	assert.Equal(t, groceries.ID, report.Categories[0].CategoryID)
	assert.True(t, report.Categories[0].Monthly[2].Equal(usecasetest.Amount(t, "200.00")))
	assert.True(t, report.Categories[0].Monthly[3].Equal(usecasetest.Amount(t, "150.00")))
	assert.True(t, report.Categories[0].Total.Equal(usecasetest.Amount(t, "350.00")))
	assert.Equal(t, rent.ID, report.Categories[1].CategoryID)
	assert.True(t, report.Categories[1].Total.Equal(usecasetest.Amount(t, "500.00")))

	require.Len(t, report.Incomes, 3)
	assert.Equal(t, 3, report.Incomes[0].Month)
	assert.Equal(t, 3, report.Incomes[1].Month)
	assert.Equal(t, 4, report.Incomes[2].Month)
	assert.Equal(t, "April", report.Incomes[2].MonthName)
	for _, income := range report.Incomes {
		if income.Description == "Bonus" {
			assert.Empty(t, income.Expenses)
			assert.True(t, income.TotalExpenses.IsZero())
		}
	}

	_, err = uc.Execute(ctx, AnnualReportInput{FlowID: uuid.New()})
	assert.True(t, domainerror.IsLedgerErrorCode(err, domainerror.ErrCodeFlowNotFound))
}

func TestAnnualReportUseCase_Cache(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	annualFlow, groceries, _ := seedYear(t, env)

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	reportCache := cache.NewRedisReportCache(client, time.Minute)

	uc := NewAnnualReportUseCase(env.Flows, env.Incomes, env.Queries, env.Balances, reportCache)
	first, err := uc.Execute(ctx, AnnualReportInput{FlowID: annualFlow.ID})
	require.NoError(t, err)
	assert.True(t, server.Exists("ledger:flow:"+annualFlow.ID.String()+":annual"))

	// A write that skips invalidation is not visible through the cache
	may := env.Income(t, env.Book(t, annualFlow.ID, 5).ID, "Salary", "1000.00")
	env.Expense(t, may.ID, groceries.ID, "Market", "10.00")

	cached, err := uc.Execute(ctx, AnnualReportInput{FlowID: annualFlow.ID})
	require.NoError(t, err)
	assert.True(t, cached.TotalIncome.Equal(first.TotalIncome))
	assert.Len(t, cached.Incomes, 3)

	ledger.InvalidateReports(ctx, reportCache, annualFlow.ID)

	fresh, err := uc.Execute(ctx, AnnualReportInput{FlowID: annualFlow.ID})
	require.NoError(t, err)
	assert.True(t, fresh.TotalIncome.Equal(usecasetest.Amount(t, "3300.00")))
	assert.True(t, fresh.TotalExpenses.Equal(usecasetest.Amount(t, "860.00")))
	assert.Len(t, fresh.Incomes, 4)

	// A malformed entry is rebuilt
	require.NoError(t, server.Set("ledger:flow:"+annualFlow.ID.String()+":annual", "{not json"))
	rebuilt, err := uc.Execute(ctx, AnnualReportInput{FlowID: annualFlow.ID})
	require.NoError(t, err)
	assert.True(t, rebuilt.TotalIncome.Equal(fresh.TotalIncome))

	// An unreachable cache only costs the rebuild
	server.Close()
	offline, err := uc.Execute(ctx, AnnualReportInput{FlowID: annualFlow.ID})
	require.NoError(t, err)
	assert.True(t, offline.TotalIncome.Equal(fresh.TotalIncome))
}

func TestFlowSummaryUseCase(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	annualFlow, _, _ := seedYear(t, env)
	env.CarryForward(t, annualFlow, 2, "75.00")
	require.NoError(t, env.Books.MarkClosed(ctx, env.Book(t, annualFlow.ID, 2).ID, env.Clock.Now()))

	output, err := NewFlowSummaryUseCase(env.Flows, env.Balances, env.Clock).Execute(ctx, FlowSummaryInput{FlowID: annualFlow.ID})
	require.NoError(t, err)

	require.Len(t, output.Books, 12)
	assert.Equal(t, 1, output.ClosedMonths)
	assert.True(t, output.AccumulatedRemnant.Equal(usecasetest.Amount(t, "75.00")))
	assert.True(t, output.YearTotals.Balance().Equal(usecasetest.Amount(t, "1450.00")))

	for _, book := range output.Books {
		// The fixed clock is in March 2025
		assert.Equal(t, book.Book.Month == 3, book.IsCurrent, "month %d", book.Book.Month)
	}
	assert.True(t, output.Books[2].Totals.Income.Equal(usecasetest.Amount(t, "1300.00")))
	assert.True(t, output.Books[0].Totals.Income.IsZero())
}

func TestBookDetailUseCase(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	annualFlow, _, _ := seedYear(t, env)
	env.CarryForward(t, annualFlow, 2, "75.00")
	uc := NewBookDetailUseCase(env.Flows, env.Books, env.Incomes, env.Remnants, env.Queries)

	march, err := uc.Execute(ctx, BookDetailInput{BookID: env.Book(t, annualFlow.ID, 3).ID})
	require.NoError(t, err)
	assert.Equal(t, 2025, march.Year)
	require.Len(t, march.Incomes, 2)
	assert.True(t, march.Totals.Income.Equal(usecasetest.Amount(t, "1300.00")))
	assert.True(t, march.Totals.Expenses.Equal(usecasetest.Amount(t, "700.00")))
	assert.Nil(t, march.CarryForward)
	require.NotNil(t, march.PreviousRemnant)
	assert.True(t, march.PreviousRemnant.Amount.Equal(usecasetest.Amount(t, "75.00")))

	for _, income := range march.Incomes {
		switch income.Income.Description {
		case "Salary":
			assert.Equal(t, int64(3), income.ExpenseCount)
			assert.True(t, income.Balance.Equal(usecasetest.Amount(t, "300.00")))
		case "Bonus":
			assert.Zero(t, income.ExpenseCount)
			assert.True(t, income.Balance.Equal(usecasetest.Amount(t, "300.00")))
		}
	}

	january, err := uc.Execute(ctx, BookDetailInput{BookID: env.Book(t, annualFlow.ID, 1).ID})
	require.NoError(t, err)
	assert.Empty(t, january.Incomes)
	assert.Nil(t, january.PreviousRemnant)
	assert.True(t, january.Totals.Balance().IsZero())

	_, err = uc.Execute(ctx, BookDetailInput{BookID: uuid.New()})
	assert.True(t, domainerror.IsLedgerErrorCode(err, domainerror.ErrCodeBookNotFound))
}

func TestIncomeDetailUseCase(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	annualFlow, groceries, rent := seedYear(t, env)

	incomes, err := env.Incomes.ListByBook(ctx, env.Book(t, annualFlow.ID, 3).ID)
	require.NoError(t, err)
	var salary *entity.Income
	for _, income := range incomes {
		if income.Description == "Salary" {
			salary = income
		}
	}
	require.NotNil(t, salary)

	output, err := NewIncomeDetailUseCase(env.Books, env.Incomes, env.Expenses, env.Categories).Execute(ctx, IncomeDetailInput{IncomeID: salary.ID})
	require.NoError(t, err)

	assert.Equal(t, 3, output.Book.Month)
	assert.True(t, output.TotalExpenses.Equal(usecasetest.Amount(t, "700.00")))
	assert.True(t, output.Balance.Equal(usecasetest.Amount(t, "300.00")))
	require.Len(t, output.Categories, 2)
	assert.Equal(t, groceries.ID, output.Categories[0].Category.ID)
	assert.Len(t, output.Categories[0].Expenses, 2)
	assert.True(t, output.Categories[0].Total.Equal(usecasetest.Amount(t, "200.00")))
	assert.Equal(t, rent.ID, output.Categories[1].Category.ID)

	_, err = NewIncomeDetailUseCase(env.Books, env.Incomes, env.Expenses, env.Categories).Execute(ctx, IncomeDetailInput{IncomeID: uuid.New()})
	assert.True(t, domainerror.IsLedgerErrorCode(err, domainerror.ErrCodeIncomeNotFound))
}

func TestDashboardUseCase(t *testing.T) {
	env := usecasetest.New(t)
	ctx := context.Background()
	uc := NewDashboardUseCase(env.Flows, env.Balances, env.Clock)

	empty, err := uc.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2025, empty.Year)
	assert.Nil(t, empty.FlowID)
	assert.True(t, empty.AccumulatedRemnant.IsZero())

	older := env.Flow(t, 2024)
	latest := env.Flow(t, 2026)
	env.CarryForward(t, older, 12, "10.00")
	env.CarryForward(t, latest, 1, "33.30")

	output, err := uc.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2026, output.Year)
	require.NotNil(t, output.FlowID)
	assert.Equal(t, latest.ID, *output.FlowID)
	assert.True(t, output.AccumulatedRemnant.Equal(usecasetest.Amount(t, "33.30")))
}
